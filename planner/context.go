package planner

import (
	"sync"
	"time"

	"github.com/fieldcore-robotics/conenav/geometry"
)

// Context is the planner's mutable state, re-architected from a set
// of process-level globals into a single owned value that each
// Planner.Tick advances. A mutex guards it defensively for
// a parallel dispatcher; the default single-dispatch-thread bus never
// contends on it.
type Context struct {
	mu sync.Mutex

	Mode Mode

	BackupAnchor geometry.Pose
	BackupRadius float64

	// TimeoutStart is unset (nil) whenever the planner last found a
	// valid forward arc; it is also reused as the BACKING mode's
	// entry timestamp.
	TimeoutStart *time.Time

	ConePatternCenter geometry.Pose
	ConeModeStart     time.Time

	lastGoalReachedPub     time.Time
	haveLastGoalReachedPub bool
}

// NewContext returns a Context starting in FORWARD mode with no
// pending timeout.
func NewContext() *Context {
	return &Context{Mode: Forward}
}

func (c *Context) setTimeoutStart(now time.Time) {
	t := now
	c.TimeoutStart = &t
}

func (c *Context) clearTimeoutStart() {
	c.TimeoutStart = nil
}

// shouldPublishGoalReached enforces the 0.5s (default) rate limit on
// the goal_reached topic.
func (c *Context) shouldPublishGoalReached(now time.Time, limit time.Duration) bool {
	if !c.haveLastGoalReachedPub || now.Sub(c.lastGoalReachedPub) >= limit {
		c.lastGoalReachedPub = now
		c.haveLastGoalReachedPub = true
		return true
	}
	return false
}
