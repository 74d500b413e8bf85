// Package planner implements the arc-based mode state machine that
// turns a pose, goal, and occupancy grid into a velocity command:
// FORWARD goal-seeking with a tangent-arc heuristic and fallback
// sampling, CONE homing, and BACKING stuck-recovery. All mutable
// planner state lives in one owned Context value that Tick advances.
package planner

import (
	"sync/atomic"
	"time"

	"github.com/edaniels/golog"

	"github.com/fieldcore-robotics/conenav/geometry"
)

// Planner holds the reconfigurable parameters, the owned mode
// Context, and the collision-testing seam it reads from.
type Planner struct {
	params atomic.Pointer[Params]
	ctx    *Context
	grid   ArcTester
	logger golog.Logger
}

// NewPlanner constructs a Planner against the given collision tester.
func NewPlanner(grid ArcTester, logger golog.Logger) *Planner {
	pl := &Planner{ctx: NewContext(), grid: grid, logger: logger}
	p := DefaultParams()
	pl.params.Store(&p)
	return pl
}

// SetParams atomically swaps the planner's thresholds.
func (pl *Planner) SetParams(p Params) {
	pl.params.Store(&p)
}

func (pl *Planner) getParams() Params {
	return *pl.params.Load()
}

// Mode returns the planner's current mode.
func (pl *Planner) Mode() Mode {
	return pl.ctx.Mode
}

// Tick advances the planner by one odometry sample and returns the
// velocity command plus any goal-tracking events. goalActive must be
// checked by the caller before invoking Tick; an inactive goal is the
// caller's concern, not the state machine's.
func (pl *Planner) Tick(here, goal geometry.Pose, bump bool, cone VisionCone, now time.Time) Result {
	p := pl.getParams()

	pl.ctx.mu.Lock()
	defer pl.ctx.mu.Unlock()

	switch pl.ctx.Mode {
	case Backing:
		return pl.tickBacking(here, now, p)
	case Cone:
		return pl.tickCone(here, goal, bump, cone, now, p)
	default:
		return pl.tickForward(here, goal, bump, cone, now, p)
	}
}
