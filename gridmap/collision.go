package gridmap

import "github.com/fieldcore-robotics/conenav/geometry"

// TestArc samples the arc (start, r, l) at spacing res/2 and returns
// false if any sample lands on a nonzero global cell. Both collision
// testing and path publication must sample the arc identically, so
// this calls geometry.ArcSample with the same step used elsewhere.
func (g *Grid) TestArc(start geometry.Pose, r, l float64) bool {
	step := g.res / 2
	for _, p := range geometry.ArcSample(start, r, l, step) {
		if g.At(p.X, p.Y) != 0 {
			return false
		}
	}
	return true
}
