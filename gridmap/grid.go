// Package gridmap maintains the fixed-extent global occupancy grid
// and the per-scan local grid used to update it: ray-traced free
// space, endpoint hits, ring inflation, and merge.
package gridmap

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"

	"github.com/fieldcore-robotics/conenav/pointcloud"
)

// Default grid dimensions and resolution, per the data model: a fixed
// N x N array covering N*r x N*r meters, centered at the world origin.
const (
	DefaultN = 5000
	DefaultR = 0.10
)

// Grid is the fixed-extent global occupancy grid. Cell values saturate
// to [0,4]; out-of-bounds reads return 0 and out-of-bounds writes are
// silent no-ops. Only the scan handler writes it; only the planner's
// collision tests read it. The dispatcher's serialization makes the
// mutex defensive rather than load-bearing; it is carried anyway in
// case of a parallel dispatcher.
type Grid struct {
	mu    sync.RWMutex
	n     int
	res   float64
	cells []uint8
}

// NewGrid allocates a Grid of n x n cells at resolution res meters per
// cell. The grid is allocated once at startup and kept for the process
// lifetime.
func NewGrid(n int, res float64) *Grid {
	return &Grid{n: n, res: res, cells: make([]uint8, n*n)}
}

// N returns the grid's side length in cells.
func (g *Grid) N() int { return g.n }

// Resolution returns the grid's cell size in meters.
func (g *Grid) Resolution() float64 { return g.res }

// worldToCell maps world coordinates to grid indices by rounding to
// the nearest cell. It does not bounds-check; callers must call
// inBounds first.
func (g *Grid) worldToCell(x, y float64) (int, int) {
	i := int(math.Round(x/g.res)) + g.n/2
	j := int(math.Round(y/g.res)) + g.n/2
	return i, j
}

func (g *Grid) inBounds(i, j int) bool {
	return i >= 0 && i < g.n && j >= 0 && j < g.n
}

// At returns the clamped occupancy value at world coordinates (x, y).
// Out-of-bounds reads return 0.
func (g *Grid) At(x, y float64) uint8 {
	i, j := g.worldToCell(x, y)
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.inBounds(i, j) {
		return 0
	}
	return g.cells[i*g.n+j]
}

// AtCell returns the clamped occupancy value at grid cell (i, j).
// Out-of-bounds reads return 0.
func (g *Grid) AtCell(i, j int) uint8 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.inBounds(i, j) {
		return 0
	}
	return g.cells[i*g.n+j]
}

// setCell clamps v to [0,4] and writes it. Out-of-bounds writes are
// discarded. Callers must hold g.mu for writing.
func (g *Grid) setCell(i, j int, v int) {
	if !g.inBounds(i, j) {
		return
	}
	if v < 0 {
		v = 0
	} else if v > 4 {
		v = 4
	}
	g.cells[i*g.n+j] = uint8(v)
}

// Set writes a clamped occupancy value at world coordinates (x, y).
func (g *Grid) Set(x, y float64, v int) {
	i, j := g.worldToCell(x, y)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setCell(i, j, v)
}

// ClearFootprint walks the robot's footprint rectangle, rotated and
// translated to pose, at res/2 spacing and zeroes the cell under each
// sample point, so edge cells the rectangle only partly covers are
// cleared too. The rectangle is robot-local: x in [-0.16, 0.16], y in
// [-0.17, 0.45].
func (g *Grid) ClearFootprint(pose r3.Vector, yaw float64) {
	const (
		xMin, xMax = -0.16, 0.16
		yMin, yMax = -0.17, 0.45
	)
	g.mu.Lock()
	defer g.mu.Unlock()

	for lx := xMin; lx <= xMax; lx += g.res / 2 {
		for ly := yMin; ly <= yMax; ly += g.res / 2 {
			wx, wy := rotateTranslate(lx, ly, yaw, pose.X, pose.Y)
			i, j := g.worldToCell(wx, wy)
			g.setCell(i, j, 0)
		}
	}
}

func rotateTranslate(lx, ly, yaw, tx, ty float64) (float64, float64) {
	cosY, sinY := cosSin(yaw)
	wx := tx + lx*cosY - ly*sinY
	wy := ty + lx*sinY + ly*cosY
	return wx, wy
}

// Snapshot produces a sparse point cloud of every occupied cell
// (value > 0), for the optional "map" outbound topic. Emission cadence
// is implementation-defined.
func (g *Grid) Snapshot() pointcloud.PointCloud {
	cloud := pointcloud.New()
	g.mu.RLock()
	defer g.mu.RUnlock()
	for i := 0; i < g.n; i++ {
		for j := 0; j < g.n; j++ {
			v := g.cells[i*g.n+j]
			if v == 0 {
				continue
			}
			x := float64(i-g.n/2) * g.res
			y := float64(j-g.n/2) * g.res
			_ = cloud.Set(pointcloud.NewVector(x, y, 0), pointcloud.NewValueData(int(v)))
		}
	}
	return cloud
}
