package pubsub

import (
	"time"

	"github.com/golang/geo/r3"

	"github.com/fieldcore-robotics/conenav/geometry"
	"github.com/fieldcore-robotics/conenav/pointcloud"
)

// ScanMessage is one planar laser scan as delivered by the driver.
type ScanMessage struct {
	FrameID        string
	Stamp          time.Time
	AngleMin       float64
	AngleIncrement float64
	RangeMin       float64
	Ranges         []float64
}

// OdometryMessage is one odometry sample: pose with a quaternion
// orientation plus the measured forward speed.
type OdometryMessage struct {
	FrameID string
	Stamp   time.Time

	X, Y           float64
	QX, QY, QZ, QW float64

	// LinearX is the measured forward speed, fed to the acceleration
	// limiter as v0.
	LinearX float64
}

// Pose reduces the message's position and quaternion to the planar
// pose the pipeline operates on.
func (m OdometryMessage) Pose() geometry.Pose {
	return geometry.Pose{X: m.X, Y: m.Y, Yaw: geometry.YawFromQuaternion(m.QX, m.QY, m.QZ, m.QW)}
}

// GoalMessage is a stamped goal point in a frame transformable to the
// position frame.
type GoalMessage struct {
	FrameID string
	Stamp   time.Time
	Point   r3.Vector
}

// WaypointOp enumerates waypoint-list edit operations.
type WaypointOp int

const (
	// WaypointAppend appends a GPS waypoint to the end of the list.
	WaypointAppend WaypointOp = iota
	// WaypointDelete removes the waypoint at Index.
	WaypointDelete
)

// GoalInputMessage edits the waypoint list.
type GoalInputMessage struct {
	Op       WaypointOp
	Lat, Lng float64
	Index    int
}

// BumpMessage is the front contact switch state.
type BumpMessage struct {
	Pressed bool
}

// GPSFixMessage is the robot's current GPS fix, used to anchor the
// waypoint projection into the odom frame.
type GPSFixMessage struct {
	Stamp    time.Time
	Lat, Lng float64
}

// ConeMarkersMessage is the detector's surviving cone set in the
// world frame.
type ConeMarkersMessage struct {
	Stamp  time.Time
	Points []r3.Vector
}

// ConeAngleMessage is the vision estimator's signed angle to the
// cone; absence of a cone is signaled by staleness, not by a message.
type ConeAngleMessage struct {
	Stamp time.Time
	Angle float64
}

// VelocityCommand is the published drive command.
type VelocityCommand struct {
	LinearX  float64
	AngularZ float64
}

// PathMessage is the sampled pose sequence of the currently selected
// arc. The samples are byte-for-byte the ones the collision test saw.
type PathMessage struct {
	Stamp time.Time
	Poses []geometry.Pose
}

// GoalReachedMessage reports arrival (true) or a cone-mode abort
// (false). Rate-limited by the planner to one per 0.5 s.
type GoalReachedMessage struct {
	Reached bool
}

// MapMessage is a sparse snapshot of the occupancy grid's occupied
// cells.
type MapMessage struct {
	Stamp time.Time
	Cloud pointcloud.PointCloud
}
