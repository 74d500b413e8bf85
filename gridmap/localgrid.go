package gridmap

import (
	"math"

	"github.com/fieldcore-robotics/conenav/geometry"
)

// DefaultL is the local grid's side length in cells.
const DefaultL = 150

// LaserToBaseOffset is the fixed forward translation (meters, along
// robot yaw) from the odometry origin to the laser.
const LaserToBaseOffset = 0.26

// inflationRadius is R, the number of inflation rings, derived from a
// 0.4 m robot radius at the grid's resolution.
func inflationRadius(res float64) int {
	return int(math.Ceil(0.4 / res))
}

// Scan is one planar laser scan, already reduced to the fields the
// mapper needs.
type Scan struct {
	AngleMin float64
	AngleInc float64
	RangeMin float64
	Ranges   []float64
}

// localGrid is the transient LxL accumulator for one scan's ray trace.
// Values: -1 free, 0 unknown, 1..R obstacle with inflation.
type localGrid struct {
	l      int
	res    float64
	cells  []int8
	cx, cy int // center cell indices, == l/2, l/2
}

func newLocalGrid(l int, res float64) *localGrid {
	return &localGrid{l: l, res: res, cells: make([]int8, l*l), cx: l / 2, cy: l / 2}
}

func (lg *localGrid) inBounds(i, j int) bool {
	return i >= 0 && i < lg.l && j >= 0 && j < lg.l
}

func (lg *localGrid) at(i, j int) int8 {
	if !lg.inBounds(i, j) {
		return 0
	}
	return lg.cells[i*lg.l+j]
}

func (lg *localGrid) set(i, j int, v int8) {
	if !lg.inBounds(i, j) {
		return
	}
	lg.cells[i*lg.l+j] = v
}

// cellOf maps a local-frame offset (meters, relative to the local
// grid's center) to local cell indices.
func (lg *localGrid) cellOf(dx, dy float64) (int, int) {
	return lg.cx + int(math.Round(dx/lg.res)), lg.cy + int(math.Round(dy/lg.res))
}

// decodeRange applies the driver's near-range status-code
// substitutions: a handful of magic range values encode "clear to
// max" and two fixed near-range faults. Returns (range, ok); ok is
// false when the beam should be dropped.
func decodeRange(rho, rangeMin float64) (float64, bool) {
	switch {
	case rho < rangeMin && rho == 0:
		return 22.0, true
	case rho > 0.0055 && rho < 0.0065:
		return 5.7, true
	case rho > 0.0155 && rho < 0.0165:
		return 5.0, true
	case rho < rangeMin:
		return 0, false
	default:
		return rho, true
	}
}

// MergeScan performs the full laser-to-map step: snap the robot pose
// to the grid, ray-trace the scan into a local grid, inflate it, merge
// it into the global grid, and clear the robot's footprint.
func (g *Grid) MergeScan(pose geometry.Pose, scan Scan) {
	res := g.res
	snapX := math.Round(pose.X/res) * res
	snapY := math.Round(pose.Y/res) * res
	dx := pose.X - snapX
	dy := pose.Y - snapY

	// fixed laser-to-base translation along robot yaw
	dx += LaserToBaseOffset * math.Cos(pose.Yaw)
	dy += LaserToBaseOffset * math.Sin(pose.Yaw)

	lg := newLocalGrid(DefaultL, res)
	r := inflationRadius(res)

	theta := pose.Yaw + scan.AngleMin
	type endpoint struct{ x, y float64 }
	var endpoints []endpoint

	for i, rho := range scan.Ranges {
		a := theta + float64(i)*scan.AngleInc
		rng, ok := decodeRange(rho, scan.RangeMin)
		if !ok {
			continue
		}

		// march outward in steps of res/2, marking free cells
		step := res / 2
		n := int(rng / step)
		for k := 0; k <= n; k++ {
			d := float64(k) * step
			if d > rng {
				d = rng
			}
			px := dx + d*math.Cos(a)
			py := dy + d*math.Sin(a)
			ci, cj := lg.cellOf(px, py)
			if !lg.inBounds(ci, cj) {
				break
			}
			lg.set(ci, cj, -1)
			if d == rng {
				break
			}
		}

		if rho >= scan.RangeMin {
			endpoints = append(endpoints, endpoint{dx + rng*math.Cos(a), dy + rng*math.Sin(a)})
		}
	}

	for _, e := range endpoints {
		ei, ej := lg.cellOf(e.x, e.y)
		if lg.inBounds(ei, ej) {
			lg.set(ei, ej, 1)
		}
	}

	inflate(lg, r)

	g.mergeLocal(lg, snapX, snapY)
	g.ClearFootprint(pose.Point(), pose.Yaw)
}

// inflate expands obstacle cells outward by up to r-1 rings: for each
// k = 1..R-1, any cell with value <= 0 adjacent (4-neighborhood) to a
// cell of value exactly k becomes k+1.
func inflate(lg *localGrid, r int) {
	for k := 1; k < r; k++ {
		toSet := make([][2]int, 0)
		for i := 0; i < lg.l; i++ {
			for j := 0; j < lg.l; j++ {
				if lg.at(i, j) > 0 {
					continue
				}
				if neighborIs(lg, i, j, int8(k)) {
					toSet = append(toSet, [2]int{i, j})
				}
			}
		}
		for _, c := range toSet {
			lg.set(c[0], c[1], int8(k+1))
		}
	}
}

// neighborIs reports whether any 4-neighbor of (i,j) holds exactly v.
// Upper bounds are l-1 so the read never leaves the row or column.
func neighborIs(lg *localGrid, i, j int, v int8) bool {
	if i > 0 && lg.at(i-1, j) == v {
		return true
	}
	if i < lg.l-1 && lg.at(i+1, j) == v {
		return true
	}
	if j > 0 && lg.at(i, j-1) == v {
		return true
	}
	if j < lg.l-1 && lg.at(i, j+1) == v {
		return true
	}
	return false
}

// mergeLocal folds a merged local grid, centered at (centerX,
// centerY), into the global grid: new = clamp(global + (local > 0 ?
// 2 : local), 0, 4).
func (g *Grid) mergeLocal(lg *localGrid, centerX, centerY float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < lg.l; i++ {
		for j := 0; j < lg.l; j++ {
			v := lg.at(i, j)
			if v == 0 {
				continue
			}
			wx := centerX + float64(i-lg.cx)*g.res
			wy := centerY + float64(j-lg.cy)*g.res
			gi, gj := g.worldToCell(wx, wy)
			if !g.inBounds(gi, gj) {
				continue
			}
			cur := int(g.cells[gi*g.n+gj])
			var delta int
			if v > 0 {
				delta = 2
			} else {
				delta = int(v)
			}
			g.setCell(gi, gj, cur+delta)
		}
	}
}
