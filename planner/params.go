package planner

import "time"

// Params holds the arc planner's reconfigurable thresholds, all
// re-readable at runtime; a reconfiguration event replaces the whole
// struct atomically with respect to callback dispatch.
type Params struct {
	MinRadius        float64       `json:"min_radius"`
	MaxRadius        float64       `json:"max_radius"`
	GoalErr          float64       `json:"goal_err"`
	ConeDist         float64       `json:"cone_dist"`
	MaxSpeed         float64       `json:"max_speed"`
	MinSpeed         float64       `json:"min_speed"`
	PlannerLookahead float64       `json:"planner_lookahead"`
	MaxAccel         float64       `json:"max_accel"`
	BackupTime       time.Duration `json:"backup_time"`
	BackupDist       float64       `json:"backup_dist"`
	StuckTimeout     time.Duration `json:"stuck_timeout"`
	ConeTimeout      time.Duration `json:"cone_timeout"`
	ConeSpeed        float64       `json:"cone_speed"`
	TrackCones       bool          `json:"track_cones"`
	ConeModeTimeout  time.Duration `json:"cone_mode_timeout"`

	// GoalReachedRateLimit bounds how often the goal_reached topic may
	// be republished while the condition that triggers it persists.
	GoalReachedRateLimit time.Duration `json:"goal_reached_rate_limit"`
}

// DefaultParams returns the planner's default thresholds.
func DefaultParams() Params {
	return Params{
		MinRadius:            0.695,
		MaxRadius:            4.0,
		GoalErr:              0.3,
		ConeDist:             6.0,
		MaxSpeed:             1.5,
		MinSpeed:             0.1,
		PlannerLookahead:     4.0,
		MaxAccel:             0.3,
		BackupTime:           10 * time.Second,
		BackupDist:           1.0,
		StuckTimeout:         2 * time.Second,
		ConeTimeout:          1 * time.Second,
		ConeSpeed:            0.4,
		TrackCones:           false,
		ConeModeTimeout:      60 * time.Second,
		GoalReachedRateLimit: 500 * time.Millisecond,
	}
}

// fallbackRadii are the |radius| multipliers sampled, in order, when
// the tangent-arc heuristic's arc collides. Order matters: ties in the
// fallback scoring are broken by iteration order (ascending k,
// positive before negative).
var fallbackRadii = []float64{1, 2, 4, 8}
