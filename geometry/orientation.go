package geometry

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// YawFromQuaternion reduces an inbound orientation quaternion to the
// 2-D yaw the rest of the pipeline operates on. Only the rotation
// about Z is meaningful here; roll and pitch are discarded.
func YawFromQuaternion(x, y, z, w float64) float64 {
	q := quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
	siny := 2 * (q.Real*q.Kmag + q.Imag*q.Jmag)
	cosy := 1 - 2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag)
	return math.Atan2(siny, cosy)
}
