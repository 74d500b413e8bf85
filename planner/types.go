package planner

import (
	"time"

	"github.com/fieldcore-robotics/conenav/geometry"
)

// Mode is the planner's top-level operating mode.
type Mode int

const (
	// Forward is normal goal-seeking drive.
	Forward Mode = iota
	// Backing is the stuck-recovery reverse maneuver.
	Backing
	// Cone is cone-homing mode, entered near the goal when cone
	// tracking is enabled.
	Cone
)

func (m Mode) String() string {
	switch m {
	case Forward:
		return "FORWARD"
	case Backing:
		return "BACKING"
	case Cone:
		return "CONE"
	default:
		return "UNKNOWN"
	}
}

// Command is the planner's output: a signed speed and a signed
// turning radius. Radius 0 means straight ahead.
type Command struct {
	Speed  float64
	Radius float64
}

// ArcTester is the collision-testing seam the planner depends on; the
// occupancy grid implements it.
type ArcTester interface {
	TestArc(start geometry.Pose, r, l float64) bool
}

// VisionCone is the most recent vision cone-angle estimate, or the
// absence of one when the estimate has gone stale.
type VisionCone struct {
	Angle   float64
	Updated time.Time
	Valid   bool
}

// Result is everything a planner Tick can cause: the velocity command
// plus any events for the goal tracker to act on.
type Result struct {
	Command Command

	// ArcLen is the length of the arc the command drives, for path
	// publication. Zero when the command is a stop or a fixed
	// maneuver with no sampled arc (BACKING, CONE).
	ArcLen float64

	// ClearActive is true when the current goal should be deactivated
	// this tick (arrival, cone-mode timeout, or bump contact).
	ClearActive bool

	// GoalReached is non-nil exactly when a goal_reached event should
	// publish this tick (subject to the 0.5s rate limit).
	GoalReached *bool
}
