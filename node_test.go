package conenav

import (
	"sync"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcore-robotics/conenav/geometry"
	"github.com/fieldcore-robotics/conenav/params"
	"github.com/fieldcore-robotics/conenav/pubsub"
)

func pointXY(x, y float64) r3.Vector {
	return r3.Vector{X: x, Y: y}
}

// collector records every message published on a topic, for asserting
// after the bus has drained.
type collector struct {
	mu   sync.Mutex
	msgs []interface{}
}

func (c *collector) handler(msg interface{}) {
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
}

func (c *collector) all() []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msgs
}

func odomAt(x, y float64, stamp time.Time, speed float64) pubsub.OdometryMessage {
	// identity quaternion: yaw 0
	return pubsub.OdometryMessage{Stamp: stamp, X: x, Y: y, QW: 1, LinearX: speed}
}

func TestStraightLineGoal(t *testing.T) {
	bus := pubsub.NewBus(golog.NewTestLogger(t))
	node := NewNode(bus, geometry.IdentityTransformer{}, nil, golog.NewTestLogger(t))

	var cmds, reached collector
	bus.Subscribe(pubsub.TopicCmdVel, cmds.handler)
	bus.Subscribe(pubsub.TopicGoalReached, reached.handler)

	base := time.Now()
	bus.Publish(pubsub.TopicCurrentGoal, pubsub.GoalMessage{Point: pointXY(5, 0), Stamp: base})
	bus.Publish(pubsub.TopicPosition, odomAt(0, 0, base, 0))
	bus.Publish(pubsub.TopicPosition, odomAt(0.5, 0, base.Add(time.Second), 0.3))
	bus.Publish(pubsub.TopicPosition, odomAt(4.8, 0, base.Add(2*time.Second), 0.6))
	bus.Close()

	cmdMsgs := cmds.all()
	require.Len(t, cmdMsgs, 3)

	first := cmdMsgs[0].(pubsub.VelocityCommand)
	assert.InDelta(t, 0.3, first.LinearX, 1e-9) // ramping from rest at max_accel
	assert.InDelta(t, 0.0, first.AngularZ, 1e-9)

	second := cmdMsgs[1].(pubsub.VelocityCommand)
	assert.Greater(t, second.LinearX, first.LinearX)
	assert.InDelta(t, 0.0, second.AngularZ, 1e-9)

	last := cmdMsgs[2].(pubsub.VelocityCommand)
	assert.InDelta(t, 0.0, last.LinearX, 1e-9)

	reachedMsgs := reached.all()
	require.Len(t, reachedMsgs, 1)
	assert.True(t, reachedMsgs[0].(pubsub.GoalReachedMessage).Reached)

	_, active := node.Tracker().Active()
	assert.False(t, active)
}

func TestObstacleDeadAheadFallsBackToSampledArc(t *testing.T) {
	bus := pubsub.NewBus(golog.NewTestLogger(t))
	node := NewNode(bus, geometry.IdentityTransformer{}, nil, golog.NewTestLogger(t))

	for x := 1.0; x <= 1.5; x += 0.05 {
		for y := -0.2; y <= 0.2; y += 0.05 {
			node.Grid().Set(x, y, 4)
		}
	}

	var cmds collector
	bus.Subscribe(pubsub.TopicCmdVel, cmds.handler)

	base := time.Now()
	bus.Publish(pubsub.TopicCurrentGoal, pubsub.GoalMessage{Point: pointXY(5, 0), Stamp: base})
	bus.Publish(pubsub.TopicPosition, odomAt(0, 0, base, 0))
	bus.Close()

	cmdMsgs := cmds.all()
	require.Len(t, cmdMsgs, 1)
	cmd := cmdMsgs[0].(pubsub.VelocityCommand)
	assert.Greater(t, cmd.LinearX, 0.0)
	assert.NotEqual(t, 0.0, cmd.AngularZ)
}

func TestScanFansOutToDetectorAndMapper(t *testing.T) {
	bus := pubsub.NewBus(golog.NewTestLogger(t))
	node := NewNode(bus, geometry.IdentityTransformer{}, nil, golog.NewTestLogger(t))

	var markers, maps collector
	bus.Subscribe(pubsub.TopicConeMarkers, markers.handler)
	bus.Subscribe(pubsub.TopicMap, maps.handler)

	base := time.Now()
	bus.Publish(pubsub.TopicPosition, odomAt(0, 0, base, 0))
	scan := pubsub.ScanMessage{
		Stamp:          base,
		AngleMin:       -0.1,
		AngleIncrement: 0.05,
		RangeMin:       0.1,
		Ranges:         []float64{2.0, 2.0, 2.0, 2.0, 2.0},
	}
	for i := 0; i < 10; i++ {
		scan.Stamp = base.Add(time.Duration(i) * 100 * time.Millisecond)
		bus.Publish(pubsub.TopicScan, scan)
	}
	bus.Close()

	// every scan produces a cone_markers emission (possibly empty)
	assert.Len(t, markers.all(), 10)
	// the tenth scan triggers a map snapshot
	require.Len(t, maps.all(), 1)

	// the beam endpoints became obstacles in the global grid
	assert.NotZero(t, node.Grid().At(2.0+0.26, 0))
}

func TestGPSWaypointFeedsTracker(t *testing.T) {
	bus := pubsub.NewBus(golog.NewTestLogger(t))
	node := NewNode(bus, geometry.IdentityTransformer{}, nil, golog.NewTestLogger(t))

	base := time.Now()
	bus.Publish(pubsub.TopicPosition, odomAt(0, 0, base, 0))
	bus.Publish(pubsub.TopicGoalInput, pubsub.GoalInputMessage{Op: pubsub.WaypointAppend, Lat: 37.001, Lng: -122.0})
	bus.Publish(pubsub.TopicGPSFix, pubsub.GPSFixMessage{Stamp: base, Lat: 37.0, Lng: -122.0})
	bus.Close()

	goal, active := node.Tracker().Active()
	require.True(t, active)
	// the waypoint is ~111 m north of the fix
	assert.InDelta(t, 111.0, goal.Point.Y, 2.0)
}

func TestReconfigureSwapsThresholds(t *testing.T) {
	bus := pubsub.NewBus(golog.NewTestLogger(t))
	node := NewNode(bus, geometry.IdentityTransformer{}, nil, golog.NewTestLogger(t))
	defer bus.Close()

	err := node.Reconfigure(params.AttributeMap{
		"planner": map[string]interface{}{"track_cones": true},
	})
	require.NoError(t, err)
	assert.True(t, node.conf.Load().Planner.TrackCones)
}
