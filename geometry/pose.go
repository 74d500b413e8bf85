// Package geometry implements the arc-based pose math shared by the
// occupancy grid, cone detector, and planner: signed-radius circular
// arcs, point distance, and yaw extraction from an inbound quaternion.
package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Pose is a 2-D position and heading in the world-fixed "odom" frame.
// Yaw is radians; it is normalized when derived but not stored-normalized.
type Pose struct {
	X, Y, Yaw float64
}

// Point returns the pose's position as an r3.Vector with Z=0.
func (p Pose) Point() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: 0}
}

// NewPoseFromPoint builds a Pose with zero yaw from a point.
func NewPoseFromPoint(pt r3.Vector) Pose {
	return Pose{X: pt.X, Y: pt.Y}
}

// Dist returns the planar Euclidean distance between two poses' positions.
func Dist(a, b Pose) float64 {
	return a.Point().Sub(b.Point()).Norm()
}

// DistPoint returns the planar Euclidean distance between two points.
func DistPoint(a, b r3.Vector) float64 {
	return a.Sub(b).Norm()
}

// normalizeAngle wraps theta into [-pi, pi).
func normalizeAngle(theta float64) float64 {
	theta = math.Mod(theta+math.Pi, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta - math.Pi
}
