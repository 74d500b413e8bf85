package gridmap

import "math"

func cosSin(yaw float64) (float64, float64) {
	return math.Cos(yaw), math.Sin(yaw)
}
