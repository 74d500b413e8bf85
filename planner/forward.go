package planner

import (
	"math"
	"time"

	"github.com/fieldcore-robotics/conenav/geometry"
)

// foldToHalfTurn reflects alpha into [-pi, pi] through +-pi rather
// than wrapping it, so the sign of alpha is preserved across the
// fold.
func foldToHalfTurn(alpha float64) float64 {
	switch {
	case alpha > math.Pi:
		return 2*math.Pi - alpha
	case alpha < -math.Pi:
		return -2*math.Pi - alpha
	default:
		return alpha
	}
}

// wrapTo2Pi folds theta into [-2*pi, 2*pi].
func wrapTo2Pi(theta float64) float64 {
	for theta > 2*math.Pi {
		theta -= 4 * math.Pi
	}
	for theta < -2*math.Pi {
		theta += 4 * math.Pi
	}
	return theta
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// arcCandidate is one sampled fallback arc: its signed radius and
// length, or radius 0 / length traverseDist for the straight
// candidate.
type arcCandidate struct {
	radius float64
	length float64
}

// tangentArc computes the tangent-arc heuristic's candidate radius and
// length toward goal from here. Internally the raw unfolded heading
// delta (arcLenAngular) decides whether to force min_radius and scales
// the final arc length; the third return value is the folded alpha,
// whose sign matches the raw delta's and picks the backup turn
// direction.
func tangentArc(here, goal geometry.Pose, p Params) (radius, arcLen, arcLenAngular float64) {
	theta := math.Atan2(goal.Y-here.Y, goal.X-here.X)
	raw := wrapTo2Pi(2 * (theta - here.Yaw))
	arcLenAngular = raw

	alpha := foldToHalfTurn(raw)
	d := geometry.Dist(here, goal)

	if math.Sin(alpha) == 0 {
		if raw == 0 {
			// goal dead ahead; the tangent arc degenerates to a line
			return 0, math.Min(d, p.PlannerLookahead), alpha
		}
		// goal directly behind; turn around at minimum radius
		radius = p.MinRadius
		arcLen = math.Min(math.Abs(raw)*radius, p.PlannerLookahead)
		return radius, arcLen, alpha
	}

	beta := (math.Pi - math.Abs(alpha)) / 2
	radius = d * math.Sin(beta) / math.Sin(alpha)

	if math.Abs(arcLenAngular) > math.Pi {
		radius = sign(radius) * p.MinRadius
	}

	arcLen = arcLenAngular * radius

	if math.Abs(radius) < p.MinRadius {
		radius = 0
		arcLen = p.MinRadius
	}

	radius = clamp(radius, -p.MaxRadius, p.MaxRadius)
	if arcLen > p.PlannerLookahead {
		arcLen = p.PlannerLookahead
	}

	return radius, arcLen, alpha
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// fallbackCandidates builds the {straight} + {+-k*min_radius : k in
// 1,2,4,8} candidate set, each with its collision-test length, in the
// exact enumeration order ties are broken by: straight first, then
// ascending k, positive before negative.
func fallbackCandidates(traverseDist float64, p Params) []arcCandidate {
	candidates := []arcCandidate{{radius: 0, length: traverseDist}}
	for _, k := range fallbackRadii {
		r := k * p.MinRadius
		l := math.Min(traverseDist, r*math.Pi/2)
		candidates = append(candidates, arcCandidate{radius: r, length: l})
		candidates = append(candidates, arcCandidate{radius: -r, length: l})
	}
	return candidates
}

// forwardSpeed computes the target speed for an arc of the given
// length, clamped to [min_speed, max_speed].
func forwardSpeed(arcLen float64, p Params) float64 {
	v := p.MaxSpeed * 2 * arcLen / p.PlannerLookahead
	return clamp(v, p.MinSpeed, p.MaxSpeed)
}

// tickForward advances FORWARD mode by one odometry sample.
func (pl *Planner) tickForward(here, goal geometry.Pose, bump bool, cone VisionCone, now time.Time, p Params) Result {
	c := pl.ctx

	if p.TrackCones && geometry.Dist(here, goal) < p.ConeDist {
		c.Mode = Cone
		c.ConePatternCenter = here
		c.ConeModeStart = now
		c.setTimeoutStart(now)
		return pl.tickCone(here, goal, bump, cone, now, p)
	}

	d := geometry.Dist(here, goal)
	if d < p.GoalErr {
		reached := true
		var event *bool
		if c.shouldPublishGoalReached(now, p.GoalReachedRateLimit) {
			event = &reached
		}
		return Result{Command: Command{Speed: 0, Radius: 0}, ClearActive: true, GoalReached: event}
	}

	radius, arcLen, arcLenAngular := tangentArc(here, goal, p)
	traverseDist := math.Min(d, p.PlannerLookahead)

	if pl.grid.TestArc(here, radius, arcLen) {
		c.clearTimeoutStart()
		speed := forwardSpeed(arcLen, p)
		return Result{Command: Command{Speed: speed, Radius: radius}, ArcLen: arcLen}
	}

	candidates := fallbackCandidates(traverseDist, p)
	var passing []arcCandidate
	for _, cand := range candidates {
		l := cand.length
		if cand.radius != 0 {
			l = math.Min(traverseDist, math.Abs(cand.radius)*math.Pi/2)
		}
		if pl.grid.TestArc(here, cand.radius, l) {
			passing = append(passing, arcCandidate{radius: cand.radius, length: l})
		}
	}

	if len(passing) == 0 {
		if c.TimeoutStart != nil && now.Sub(*c.TimeoutStart) > p.StuckTimeout {
			c.Mode = Backing
			c.BackupAnchor = here
			c.BackupRadius = -sign(arcLenAngular) * p.MinRadius
			c.setTimeoutStart(now)
		} else if c.TimeoutStart == nil {
			c.setTimeoutStart(now)
		}
		return Result{Command: Command{Speed: 0, Radius: 0}}
	}

	best := passing[0]
	bestScore := math.Inf(1)
	for _, cand := range passing {
		end := geometry.ArcEnd(here, cand.radius, cand.length)
		score := geometry.Dist(end, goal)
		if score < bestScore {
			bestScore = score
			best = cand
		}
	}
	c.clearTimeoutStart()
	speed := forwardSpeed(best.length, p)
	return Result{Command: Command{Speed: speed, Radius: best.radius}, ArcLen: best.length}
}
