// Package conenav wires the cone-homing perception-and-planning
// pipeline together: laser scans fan out to the cone detector and the
// occupancy-grid mapper, odometry ticks drive the arc planner, and
// the planner's command goes out through the acceleration limiter as
// a velocity message. All handlers run on the bus's single dispatch
// goroutine and so execute mutually exclusively.
package conenav

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/edaniels/golog"
	geo "github.com/kellydunn/golang-geo"

	"github.com/fieldcore-robotics/conenav/cmdvel"
	"github.com/fieldcore-robotics/conenav/conedetector"
	"github.com/fieldcore-robotics/conenav/geometry"
	"github.com/fieldcore-robotics/conenav/gpsgoal"
	"github.com/fieldcore-robotics/conenav/gridmap"
	"github.com/fieldcore-robotics/conenav/navgoal"
	"github.com/fieldcore-robotics/conenav/params"
	"github.com/fieldcore-robotics/conenav/planner"
	"github.com/fieldcore-robotics/conenav/pubsub"
)

// mapPublishEvery is how many scans pass between occupancy-grid
// snapshot publications.
const mapPublishEvery = 10

// Node owns the pipeline's components and their shared state. The
// bus serializes every handler, so plain fields suffice here; the
// grid and planner carry their own locks for a parallel dispatcher.
type Node struct {
	bus       *pubsub.Bus
	transform geometry.Transformer
	logger    golog.Logger

	conf     atomic.Pointer[params.Set]
	grid     *gridmap.Grid
	detector *conedetector.Detector
	planner  *planner.Planner
	tracker  *navgoal.Tracker
	queue    *navgoal.Queue

	lastPose geometry.Pose
	havePose bool

	bump        bool
	coneAngle   planner.VisionCone
	lastMarkers pubsub.ConeMarkersMessage
	scanCount   int
}

// NewNode builds the pipeline against a bus and transform service and
// registers every inbound handler. The occupancy grid is allocated
// once here and kept for the node's lifetime.
func NewNode(bus *pubsub.Bus, transform geometry.Transformer, conf *params.Set, logger golog.Logger) *Node {
	if conf == nil {
		c := params.Defaults()
		conf = &c
	}
	n := &Node{
		bus:       bus,
		transform: transform,
		logger:    logger,
		grid:      gridmap.NewGrid(conf.GridSize, conf.GridResolution),
		detector:  conedetector.NewDetector(transform, logger),
		tracker:   navgoal.NewTracker(),
		queue:     navgoal.NewQueue(),
	}
	n.planner = planner.NewPlanner(n.grid, logger)
	n.conf.Store(conf)
	n.detector.SetParams(conf.Detector)
	n.planner.SetParams(conf.Planner)

	bus.Subscribe(pubsub.TopicScan, n.handleScan)
	bus.Subscribe(pubsub.TopicPosition, n.handlePosition)
	bus.Subscribe(pubsub.TopicCurrentGoal, n.handleGoal)
	bus.Subscribe(pubsub.TopicGoalInput, n.handleGoalInput)
	bus.Subscribe(pubsub.TopicGPSFix, n.handleGPSFix)
	bus.Subscribe(pubsub.TopicBump, n.handleBump)
	bus.Subscribe(pubsub.TopicConeAngle, n.handleConeAngle)
	bus.Subscribe(pubsub.TopicConeMarkers, n.handleConeMarkers)
	return n
}

// Grid exposes the global occupancy grid, e.g. for seeding obstacles
// in tests.
func (n *Node) Grid() *gridmap.Grid { return n.grid }

// Tracker exposes the goal tracker.
func (n *Node) Tracker() *navgoal.Tracker { return n.tracker }

// Queue exposes the GPS waypoint queue.
func (n *Node) Queue() *navgoal.Queue { return n.queue }

// Cones returns the most recent cone marker set seen on the bus,
// whether self-published by the detector or external.
func (n *Node) Cones() pubsub.ConeMarkersMessage { return n.lastMarkers }

// Reconfigure decodes a fresh parameter set from the attribute bag
// and swaps it in atomically with respect to callback dispatch. Grid
// dimensions are fixed at construction and ignored here.
func (n *Node) Reconfigure(attributes params.AttributeMap) error {
	conf, err := params.FromAttributes(attributes)
	if err != nil {
		return err
	}
	n.conf.Store(conf)
	n.detector.SetParams(conf.Detector)
	n.planner.SetParams(conf.Planner)
	return nil
}

func stampOr(stamp time.Time, fallback time.Time) time.Time {
	if stamp.IsZero() {
		return fallback
	}
	return stamp
}

func (n *Node) handleScan(msg interface{}) {
	scan, ok := msg.(pubsub.ScanMessage)
	if !ok {
		return
	}
	now := stampOr(scan.Stamp, time.Now())

	beams := make([]conedetector.Beam, len(scan.Ranges))
	for i, rho := range scan.Ranges {
		beams[i] = conedetector.Beam{
			Angle: scan.AngleMin + float64(i)*scan.AngleIncrement,
			Range: rho,
		}
	}
	cones := n.detector.HandleScan(context.Background(), scan.RangeMin, beams, now)
	markers := pubsub.ConeMarkersMessage{Stamp: now}
	for _, c := range cones {
		markers.Points = append(markers.Points, c.Point)
	}
	n.bus.Publish(pubsub.TopicConeMarkers, markers)

	if n.havePose {
		n.grid.MergeScan(n.lastPose, gridmap.Scan{
			AngleMin: scan.AngleMin,
			AngleInc: scan.AngleIncrement,
			RangeMin: scan.RangeMin,
			Ranges:   scan.Ranges,
		})
	}

	n.scanCount++
	if n.scanCount%mapPublishEvery == 0 {
		n.bus.Publish(pubsub.TopicMap, pubsub.MapMessage{Stamp: now, Cloud: n.grid.Snapshot()})
	}
}

func (n *Node) handlePosition(msg interface{}) {
	odom, ok := msg.(pubsub.OdometryMessage)
	if !ok {
		return
	}
	now := stampOr(odom.Stamp, time.Now())
	here := odom.Pose()
	n.lastPose = here
	n.havePose = true

	goal, active := n.tracker.Active()
	if !active {
		return
	}

	conf := n.conf.Load()
	res := n.planner.Tick(here, geometry.NewPoseFromPoint(goal.Point), n.bump, n.coneAngle, now)

	speed := cmdvel.Limit(odom.LinearX, res.Command.Speed, conf.Planner.MaxAccel)
	n.bus.Publish(pubsub.TopicCmdVel, cmdvel.Convert(speed, res.Command.Radius))

	if res.ArcLen != 0 {
		n.bus.Publish(pubsub.TopicPath, pubsub.PathMessage{
			Stamp: now,
			Poses: geometry.ArcSample(here, res.Command.Radius, res.ArcLen, n.grid.Resolution()/2),
		})
	}
	if res.GoalReached != nil {
		n.bus.Publish(pubsub.TopicGoalReached, pubsub.GoalReachedMessage{Reached: *res.GoalReached})
	}
	if res.ClearActive {
		n.tracker.Clear()
		n.queue.Advance()
	}
}

func (n *Node) handleGoal(msg interface{}) {
	g, ok := msg.(pubsub.GoalMessage)
	if !ok {
		return
	}
	tctx, cancel := geometry.WithTransformTimeout(context.Background())
	defer cancel()
	point, err := n.transform.TransformPoint(tctx, "odom", g.Point)
	if err != nil {
		n.logger.Warnw("dropping goal, transform unavailable", "frame", g.FrameID, "error", err)
		return
	}
	n.tracker.Set(navgoal.Goal{Point: point, Stamp: stampOr(g.Stamp, time.Now())})
}

func (n *Node) handleGoalInput(msg interface{}) {
	in, ok := msg.(pubsub.GoalInputMessage)
	if !ok {
		return
	}
	switch in.Op {
	case pubsub.WaypointAppend:
		n.queue.Append(in.Lat, in.Lng)
	case pubsub.WaypointDelete:
		if err := n.queue.Delete(in.Index); err != nil {
			n.logger.Warnw("waypoint delete failed", "index", in.Index, "error", err)
		}
	default:
		n.logger.Warnw("unimplemented waypoint operation", "op", in.Op)
	}
}

// handleGPSFix projects the current GPS waypoint into the odom frame
// about the fresh fix and hands it to the tracker. Without a pose
// there is no odom anchor yet, so the fix is dropped.
func (n *Node) handleGPSFix(msg interface{}) {
	fix, ok := msg.(pubsub.GPSFixMessage)
	if !ok || !n.havePose {
		return
	}
	wp, active := n.queue.Current()
	if !active {
		return
	}
	point := gpsgoal.Project(
		geo.NewPoint(fix.Lat, fix.Lng),
		geo.NewPoint(wp.Lat, wp.Lng),
		n.lastPose.Point(),
	)
	n.tracker.Set(navgoal.Goal{Point: point, Stamp: stampOr(fix.Stamp, time.Now())})
}

func (n *Node) handleBump(msg interface{}) {
	if b, ok := msg.(pubsub.BumpMessage); ok {
		n.bump = b.Pressed
	}
}

func (n *Node) handleConeAngle(msg interface{}) {
	if a, ok := msg.(pubsub.ConeAngleMessage); ok {
		n.coneAngle = planner.VisionCone{
			Angle:   a.Angle,
			Updated: stampOr(a.Stamp, time.Now()),
			Valid:   true,
		}
	}
}

func (n *Node) handleConeMarkers(msg interface{}) {
	if m, ok := msg.(pubsub.ConeMarkersMessage); ok {
		n.lastMarkers = m
	}
}
