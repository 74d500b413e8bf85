package pointcloud

import (
	"github.com/golang/geo/r3"
)

// NewVector is a convenience constructor for a position.
func NewVector(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

// Data is the payload attached to one point in a PointCloud. The grid
// snapshot only ever carries a clamped cell value, so Data here is
// value-only — no color channel, unlike a general-purpose cloud.
type Data interface {
	// HasValue returns whether this point carries a user data value.
	HasValue() bool

	// Value returns the user data value, if any.
	Value() int

	// SetValue sets the user data value on the point.
	SetValue(v int) Data

	// HasColor always reports false; kept so Data satisfies the shape
	// MetaData.Merge expects without carrying color storage.
	HasColor() bool
}

type valueData struct {
	hasValue bool
	value    int
}

// NewValueData returns a Data carrying the given occupancy value.
func NewValueData(v int) Data {
	return &valueData{value: v, hasValue: true}
}

func (d *valueData) HasValue() bool { return d.hasValue }
func (d *valueData) Value() int     { return d.value }

func (d *valueData) SetValue(v int) Data {
	d.hasValue = true
	d.value = v
	return d
}

func (d *valueData) HasColor() bool { return false }
