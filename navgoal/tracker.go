// Package navgoal owns goal bookkeeping: the single active goal the
// planner consumes, and the GPS waypoint queue that feeds it the next
// goal on arrival.
package navgoal

import (
	"time"

	"github.com/golang/geo/r3"
)

// Goal is the one stamped world-frame point the planner steers to.
type Goal struct {
	Point r3.Vector
	Stamp time.Time
}

// Tracker holds the active goal. At most one goal is active at a
// time; arrival clears the active flag.
type Tracker struct {
	goal   Goal
	active bool
}

// NewTracker returns a Tracker with no active goal.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Set replaces the active goal.
func (t *Tracker) Set(g Goal) {
	t.goal = g
	t.active = true
}

// Clear deactivates the goal. In-flight commands are not retracted;
// the next planner tick simply sees no active goal.
func (t *Tracker) Clear() {
	t.active = false
}

// Active returns the current goal and whether it is active.
func (t *Tracker) Active() (Goal, bool) {
	return t.goal, t.active
}
