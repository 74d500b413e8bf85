// Package pointcloud defines a sparse point cloud container used to
// snapshot the occupancy grid for visualization without serializing
// the dense fixed-extent array.
//
// The implementation is dictionary based and is not yet efficient;
// the current focus is to make it useful.
package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
)

// MetaData is summary data about what's stored in a PointCloud.
type MetaData struct {
	HasColor bool
	HasValue bool

	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64

	inited bool
}

// NewMetaData returns a MetaData with inverted min/max bounds so the
// first Merge call always takes effect.
func NewMetaData() MetaData {
	return MetaData{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MinZ: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
		MaxZ: -math.MaxFloat64,
	}
}

// Merge folds one point's data and position into the running bounds.
func (meta *MetaData) Merge(p r3.Vector, d Data) {
	if d.HasColor() {
		meta.HasColor = true
	}
	if d.HasValue() {
		meta.HasValue = true
	}

	if !meta.inited {
		meta.MinX, meta.MaxX = p.X, p.X
		meta.MinY, meta.MaxY = p.Y, p.Y
		meta.MinZ, meta.MaxZ = p.Z, p.Z
		meta.inited = true
		return
	}

	if p.X > meta.MaxX {
		meta.MaxX = p.X
	}
	if p.Y > meta.MaxY {
		meta.MaxY = p.Y
	}
	if p.Z > meta.MaxZ {
		meta.MaxZ = p.Z
	}
	if p.X < meta.MinX {
		meta.MinX = p.X
	}
	if p.Y < meta.MinY {
		meta.MinY = p.Y
	}
	if p.Z < meta.MinZ {
		meta.MinZ = p.Z
	}
}

// PointCloud is a general purpose container of points. The current
// implementation is sparse, keyed by exact position.
type PointCloud interface {
	// Size returns the number of points in the cloud.
	Size() int

	// MetaData returns summary data about the cloud's contents.
	MetaData() MetaData

	// Set places the given point in the cloud.
	Set(p r3.Vector, d Data) error

	// At returns the data at the given position, if any point exists there.
	At(x, y, z float64) (Data, bool)

	// Iterate calls fn for every point in the cloud until fn returns false.
	Iterate(fn func(p r3.Vector, d Data) bool)
}

type basicPointCloud struct {
	points map[r3.Vector]Data
	meta   MetaData
}

// New returns an empty PointCloud.
func New() PointCloud {
	return &basicPointCloud{points: make(map[r3.Vector]Data), meta: NewMetaData()}
}

func (cloud *basicPointCloud) Size() int {
	return len(cloud.points)
}

func (cloud *basicPointCloud) MetaData() MetaData {
	return cloud.meta
}

func (cloud *basicPointCloud) At(x, y, z float64) (Data, bool) {
	d, ok := cloud.points[r3.Vector{X: x, Y: y, Z: z}]
	return d, ok
}

func (cloud *basicPointCloud) Set(p r3.Vector, d Data) error {
	cloud.points[p] = d
	cloud.meta.Merge(p, d)
	return nil
}

func (cloud *basicPointCloud) Iterate(fn func(p r3.Vector, d Data) bool) {
	for p, d := range cloud.points {
		if !fn(p, d) {
			return
		}
	}
}
