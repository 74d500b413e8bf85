package navgoal

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Waypoint is one GPS goal in the queue.
type Waypoint struct {
	ID       uuid.UUID
	Lat, Lng float64
}

// Queue is the ordered GPS waypoint list feeding the Tracker. It
// hands out the current waypoint until Advance is called on arrival,
// then moves to the next; with Loop set it wraps around instead of
// deactivating after the last waypoint.
type Queue struct {
	waypoints []Waypoint
	current   int
	active    bool

	// Loop wraps back to the first waypoint after the last instead of
	// deactivating.
	Loop bool
}

// NewQueue returns an empty, inactive Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Append adds a waypoint to the end of the list and reactivates the
// queue if it was inactive.
func (q *Queue) Append(lat, lng float64) Waypoint {
	wp := Waypoint{ID: uuid.New(), Lat: lat, Lng: lng}
	q.waypoints = append(q.waypoints, wp)
	q.active = true
	return wp
}

// Delete removes the waypoint at index i, shifting the current
// position down when a waypoint before it is removed. An empty list
// deactivates the queue.
func (q *Queue) Delete(i int) error {
	if i < 0 || i >= len(q.waypoints) {
		return errors.Errorf("waypoint index %d out of range [0,%d)", i, len(q.waypoints))
	}
	q.waypoints = append(q.waypoints[:i], q.waypoints[i+1:]...)
	if q.current > i {
		q.current--
	}
	if len(q.waypoints) == 0 {
		q.active = false
		q.current = 0
	} else if q.current >= len(q.waypoints) {
		q.current = len(q.waypoints) - 1
	}
	return nil
}

// Current returns the waypoint the robot should be driving to, and
// whether the queue is active.
func (q *Queue) Current() (Waypoint, bool) {
	if !q.active || q.current >= len(q.waypoints) {
		return Waypoint{}, false
	}
	return q.waypoints[q.current], true
}

// Advance moves to the next waypoint after the current one is
// reached. After the last waypoint it wraps around when Loop is set,
// otherwise deactivates.
func (q *Queue) Advance() {
	q.current++
	if q.current >= len(q.waypoints) {
		if q.Loop {
			q.current = 0
		} else {
			q.active = false
		}
	}
}

// Len returns the number of queued waypoints.
func (q *Queue) Len() int {
	return len(q.waypoints)
}
