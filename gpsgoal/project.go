// Package gpsgoal linearizes a GPS waypoint about the robot's current
// fix, producing the odom-frame goal point the planner steers to. The
// projection happens once, at the boundary, so everything downstream
// works in the flat world frame.
package gpsgoal

import (
	"math"

	"github.com/golang/geo/r3"
	geo "github.com/kellydunn/golang-geo"
)

// Project returns the odom-frame point for waypoint, anchored at the
// robot's current GPS fix and its matching odom position. The
// great-circle distance and initial bearing from fix to waypoint are
// laid out from odomHere; bearing is degrees east of north, so it is
// converted to radians north of east before use.
func Project(fix, waypoint *geo.Point, odomHere r3.Vector) r3.Vector {
	d := fix.GreatCircleDistance(waypoint) * 1000.0 // km to m
	bearing := fix.BearingTo(waypoint) * math.Pi / 180.0
	heading := math.Pi/2.0 - bearing
	return r3.Vector{
		X: odomHere.X + d*math.Cos(heading),
		Y: odomHere.Y + d*math.Sin(heading),
		Z: 0,
	}
}
