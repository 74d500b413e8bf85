package conedetector

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/fieldcore-robotics/conenav/geometry"
)

// Detector segments laser scans into candidate cone arcs, gates them
// geometrically, fits a center and radius, and tracks survivors across
// scans. It is invoked on every scan; the node's scan handler calls
// its methods directly, not through any interface (there is one
// concrete detector).
type Detector struct {
	params    atomic.Pointer[Params]
	transform geometry.Transformer
	logger    golog.Logger

	cones []Cone
}

// NewDetector constructs a Detector with the given transform service
// and logger. Call SetParams before first use if non-default
// thresholds are required.
func NewDetector(transform geometry.Transformer, logger golog.Logger) *Detector {
	d := &Detector{transform: transform, logger: logger}
	p := DefaultParams()
	d.params.Store(&p)
	return d
}

// SetParams atomically swaps the detector's thresholds. Safe to call
// from the reconfiguration callback; the dispatcher serializes it with
// respect to HandleScan.
func (d *Detector) SetParams(p Params) {
	d.params.Store(&p)
}

func (d *Detector) getParams() Params {
	return *d.params.Load()
}

// Beam is one range reading from a planar laser scan, already reduced
// to the angle it was taken at.
type Beam struct {
	Angle float64
	Range float64
}

// HandleScan runs the full detection pipeline over one scan's beams
// (each already in the laser's frame_id, which TransformPoint will
// resolve against the world frame) and returns the surviving cone set.
// On transform-service timeout the scan is dropped: no state mutation,
// the prior cone set is returned unchanged.
func (d *Detector) HandleScan(ctx context.Context, rangeMin float64, beams []Beam, now time.Time) []Cone {
	p := d.getParams()

	groups, err := d.segment(ctx, rangeMin, beams, p)
	if err != nil {
		d.logger.Warnw("dropping scan, transform unavailable", "error", err)
		return d.cones
	}

	for _, g := range groups {
		if len(g) <= p.MinCircleSize {
			continue
		}
		center, radius, ok := fitCircle(g, p)
		if !ok {
			continue
		}
		d.logger.Debugw("cone candidate accepted", "x", center.X, "y", center.Y, "radius", radius)
		d.associate(center, now)
	}

	d.retain(now, p)
	return d.cones
}

// segment converts every valid beam to a world-frame point and splits
// the sequence into groups wherever consecutive accepted points are
// farther apart than GroupingThreshold.
func (d *Detector) segment(ctx context.Context, rangeMin float64, beams []Beam, p Params) ([][]r3.Vector, error) {
	var groups [][]r3.Vector
	var current []r3.Vector
	var prev r3.Vector
	havePrev := false

	tctx, cancel := geometry.WithTransformTimeout(ctx)
	defer cancel()

	for _, b := range beams {
		if b.Range < rangeMin {
			continue
		}
		local := r3.Vector{X: b.Range * math.Cos(b.Angle), Y: b.Range * math.Sin(b.Angle), Z: 0}
		world, err := d.transform.TransformPoint(tctx, "odom", local)
		if err != nil {
			return nil, err
		}

		if havePrev && world.Sub(prev).Norm() > p.GroupingThreshold {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, world)
		prev = world
		havePrev = true
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups, nil
}

// fitCircle runs the inscribed-angle test, sagitta gate, roundness
// gate, center fit, and radius gate over one segmented group. ok is
// false if any gate rejects the group.
func fitCircle(group []r3.Vector, p Params) (r3.Vector, float64, bool) {
	n := len(group)
	first := group[0]
	last := group[n-1]

	alphas := make([]float64, 0, n-2)
	for k := 1; k < n-1; k++ {
		pk := group[k]
		a := math.Atan2(first.Y-pk.Y, first.X-pk.X) - math.Atan2(last.Y-pk.Y, last.X-pk.X)
		alphas = append(alphas, a)
	}
	if len(alphas) == 0 {
		return r3.Vector{}, 0, false
	}

	chord := last.Sub(first).Norm()

	// sagitta gate: theta uses atan2(dx, dy), so x2 comes out as the
	// perpendicular projection of mid onto the chord normal.
	theta := math.Atan2(last.X-first.X, last.Y-first.Y)
	mid := group[n/2]
	x2 := -((mid.X-first.X)*math.Cos(theta) - (mid.Y-first.Y)*math.Sin(theta))
	if !(0.1*chord <= x2 && x2 <= 0.7*chord) {
		return r3.Vector{}, 0, false
	}

	degrees := make([]float64, len(alphas))
	for i, a := range alphas {
		degrees[i] = a * 180 / math.Pi
	}
	meanDeg, err := stats.Mean(degrees)
	if err != nil {
		return r3.Vector{}, 0, false
	}
	stddev, err := stats.StandardDeviationPopulation(degrees)
	if err != nil {
		return r3.Vector{}, 0, false
	}
	if stddev >= p.StdDevThreshold {
		return r3.Vector{}, 0, false
	}

	meanAlpha := meanDeg * math.Pi / 180

	phi := math.Atan2(last.Y-first.Y, last.X-first.X)
	localX := chord / 2
	localY := chord * math.Tan(meanAlpha-math.Pi/2)
	radius := math.Hypot(localX, localY)

	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	center := r3.Vector{
		X: first.X + localX*cosPhi - localY*sinPhi,
		Y: first.Y + localX*sinPhi + localY*cosPhi,
		Z: 0,
	}

	if !(radius > p.MinConeRadius && radius < p.MaxConeRadius) {
		return r3.Vector{}, 0, false
	}
	return center, radius, true
}

// associate finds the nearest existing cone to center; if within
// SameConeThreshold it is removed, and the new detection is always
// inserted with the current timestamp.
func (d *Detector) associate(center r3.Vector, now time.Time) {
	p := d.getParams()

	best := -1
	bestDist := math.Inf(1)
	for i, c := range d.cones {
		dist := c.Point.Sub(center).Norm()
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	id := uuid.New()
	if best >= 0 && bestDist < p.SameConeThreshold {
		id = d.cones[best].ID
		d.cones = append(d.cones[:best], d.cones[best+1:]...)
	}
	d.cones = append(d.cones, Cone{ID: id, Point: center, LastSeen: now})
}

// retain drops every cone whose timestamp falls outside the retention
// window relative to now.
func (d *Detector) retain(now time.Time, p Params) {
	window := time.Duration(p.RetentionWindow * float64(time.Second))
	survivors := d.cones[:0]
	for _, c := range d.cones {
		if now.Sub(c.LastSeen) <= window {
			survivors = append(survivors, c)
		}
	}
	d.cones = survivors
}
