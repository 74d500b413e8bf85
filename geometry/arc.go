package geometry

import "math"

// ArcTraverse follows a circular arc of signed radius r for length l
// starting at start and returns the resulting pose. The sign of r
// encodes turn direction: the circle's center lies perpendicular-left
// of start for positive r. A radius of exactly 0 means straight-line
// travel along start.Yaw.
func ArcTraverse(start Pose, r, l float64) Pose {
	if r == 0 {
		return Pose{
			X:   start.X + l*math.Cos(start.Yaw),
			Y:   start.Y + l*math.Sin(start.Yaw),
			Yaw: start.Yaw,
		}
	}

	sweep := l / r
	centerAngle := start.Yaw + math.Pi/2
	cx := start.X + r*math.Cos(centerAngle)
	cy := start.Y + r*math.Sin(centerAngle)

	finalYaw := (start.Yaw - math.Pi/2) + sweep
	x := cx + r*math.Cos(finalYaw)
	y := cy + r*math.Sin(finalYaw)

	return Pose{X: x, Y: y, Yaw: normalizeAngle(start.Yaw + sweep)}
}

// ArcSample produces the same path ArcTraverse would end at, as a
// sequence of poses spaced step apart along the arc. Collision testing
// and path publication must both call ArcSample (or iterate it
// identically) so that "does this arc collide?" and "what path will I
// publish?" see the exact same points.
func ArcSample(start Pose, r, l, step float64) []Pose {
	if step <= 0 {
		step = 0.01
	}
	n := int(math.Ceil(math.Abs(l) / step))
	if n < 1 {
		n = 1
	}
	samples := make([]Pose, 0, n+1)
	sign := 1.0
	if l < 0 {
		sign = -1.0
	}
	for i := 0; i <= n; i++ {
		d := float64(i) * step * sign
		if math.Abs(d) > math.Abs(l) {
			d = l
		}
		samples = append(samples, ArcTraverse(start, r, d))
		if d == l {
			break
		}
	}
	return samples
}

// ArcEnd is a convenience for ArcTraverse(start, r, l) when only the
// endpoint, not the full sample sequence, is needed.
func ArcEnd(start Pose, r, l float64) Pose {
	return ArcTraverse(start, r, l)
}
