// Package cmdvel turns a planner command (signed speed, signed
// turning radius) into the published velocity message, applying the
// acceleration limit against the measured speed first. Factoring the
// apply step out of the mode state machine keeps it independently
// testable.
package cmdvel

import (
	"context"

	"github.com/fieldcore-robotics/conenav/pubsub"
)

// Controller is the velocity-controller/actuator seam. It is an
// external collaborator; the pipeline only ever publishes commands at
// it.
type Controller interface {
	SetVelocity(ctx context.Context, cmd pubsub.VelocityCommand) error
	Stop(ctx context.Context) error
	Close(ctx context.Context) error
}

// Limit applies the acceleration bound to a desired speed given the
// measured speed. Acceleration away from zero is limited to maxAccel
// per tick; deceleration is unbounded.
func Limit(measured, desired, maxAccel float64) float64 {
	switch {
	case desired > 0:
		if measured > 0 {
			if desired < measured+maxAccel {
				return desired
			}
			return measured + maxAccel
		}
		return maxAccel
	case desired < 0:
		if measured < 0 {
			if desired > measured-maxAccel {
				return desired
			}
			return measured - maxAccel
		}
		return -maxAccel
	default:
		return 0
	}
}

// Convert maps a (speed, radius) pair to the wire command. The
// angular rate is speed over radius; a zero radius means straight
// ahead.
func Convert(speed, radius float64) pubsub.VelocityCommand {
	var angular float64
	if radius != 0 {
		angular = speed / radius
	}
	return pubsub.VelocityCommand{LinearX: speed, AngularZ: angular}
}
