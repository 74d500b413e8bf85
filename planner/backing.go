package planner

import (
	"time"

	"github.com/fieldcore-robotics/conenav/geometry"
)

// tickBacking advances BACKING mode by one odometry sample.
func (pl *Planner) tickBacking(here geometry.Pose, now time.Time, p Params) Result {
	c := pl.ctx

	timedOut := c.TimeoutStart != nil && now.Sub(*c.TimeoutStart) > p.BackupTime
	driftedOut := geometry.Dist(here, c.BackupAnchor) > p.BackupDist
	if timedOut || driftedOut {
		c.Mode = Forward
		c.clearTimeoutStart()
		return Result{Command: Command{Speed: 0, Radius: 0}}
	}

	return Result{Command: Command{Speed: -2 * p.MinSpeed, Radius: c.BackupRadius}}
}
