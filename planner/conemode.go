package planner

import (
	"time"

	"github.com/fieldcore-robotics/conenav/geometry"
)

// ConeSearchRadius is the fixed search-spiral radius driven when the
// vision cone-angle estimate has gone stale.
const ConeSearchRadius = 2.0

// tickCone advances CONE mode by one odometry sample. bump and cone
// are the latest bump-sensor reading and vision cone-angle estimate.
func (pl *Planner) tickCone(here, goal geometry.Pose, bump bool, cone VisionCone, now time.Time, p Params) Result {
	c := pl.ctx

	if bump {
		c.Mode = Backing
		c.BackupAnchor = here
		c.setTimeoutStart(now)
		reached := true
		return Result{
			Command:     Command{Speed: 0, Radius: 0},
			ClearActive: true,
			GoalReached: &reached,
		}
	}

	if now.Sub(c.ConeModeStart) > p.ConeModeTimeout {
		c.Mode = Forward
		reached := false
		return Result{
			Command:     Command{Speed: 0, Radius: 0},
			ClearActive: true,
			GoalReached: &reached,
		}
	}

	speed := p.ConeSpeed
	var radius float64
	if cone.Valid && now.Sub(cone.Updated) <= p.ConeTimeout {
		radius = speed / (cone.Angle * 1.4)
	} else {
		radius = ConeSearchRadius
	}

	return Result{Command: Command{Speed: speed, Radius: radius}}
}
