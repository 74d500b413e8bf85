package geometry

import (
	"context"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// TransformTimeout bounds how long a caller will wait for the
// transform service to become available for a given frame, per scan
// or odometry message.
const TransformTimeout = 500 * time.Millisecond

// ErrTransformUnavailable is returned when the transform service
// cannot produce a target-frame point within TransformTimeout. Callers
// log and drop the affected message; they must not mutate state.
var ErrTransformUnavailable = errors.New("transform service unavailable")

// Transformer converts a point stamped in some source frame into the
// given target frame. Implementations must respect ctx's deadline and
// return ErrTransformUnavailable (or a wrapped form of it) on timeout.
type Transformer interface {
	TransformPoint(ctx context.Context, targetFrame string, p r3.Vector) (r3.Vector, error)
}

// IdentityTransformer is a Transformer that performs no transform; it
// is used in tests and in single-frame deployments where the source
// and target frames coincide.
type IdentityTransformer struct{}

// TransformPoint returns p unchanged.
func (IdentityTransformer) TransformPoint(_ context.Context, _ string, p r3.Vector) (r3.Vector, error) {
	return p, nil
}

// WithTransformTimeout bounds ctx to TransformTimeout, matching the
// "bounded (<= 0.5s) transform-service availability wait per scan"
// concurrency rule.
func WithTransformTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, TransformTimeout)
}
