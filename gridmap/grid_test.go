package gridmap

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcore-robotics/conenav/geometry"
	"github.com/fieldcore-robotics/conenav/pointcloud"
)

func TestSetClampsToRange(t *testing.T) {
	g := NewGrid(100, 0.1)
	g.Set(0, 0, 10)
	assert.EqualValues(t, 4, g.AtCell(50, 50))
	g.Set(0, 0, -5)
	assert.EqualValues(t, 0, g.AtCell(50, 50))
}

func TestOutOfBoundsReadIsZero(t *testing.T) {
	g := NewGrid(100, 0.1)
	assert.EqualValues(t, 0, g.At(1000, 1000))
}

func TestOutOfBoundsWriteIsNoop(t *testing.T) {
	g := NewGrid(10, 0.1)
	require.NotPanics(t, func() {
		g.Set(1000, 1000, 3)
	})
}

func TestMergeScanRayFreeEndpointOccupied(t *testing.T) {
	g := NewGrid(500, 0.1)
	pose := geometry.Pose{X: 0, Y: 0, Yaw: 0}
	scan := Scan{
		AngleMin: 0,
		AngleInc: 0,
		RangeMin: 0.1,
		Ranges:   []float64{2.0},
	}
	g.MergeScan(pose, scan)

	// the beam endpoint (laser offset + range) is an obstacle
	assert.NotZero(t, g.At(0.26+2.0, 0))

	// mid-ray cells outside the inflation ring stay free
	for x := 0.8; x < 1.6; x += 0.1 {
		assert.Zero(t, g.At(x, 0), "cell at x=%f should be free", x)
	}
}

func TestMergeScanSaturatesOverRepeatedScans(t *testing.T) {
	g := NewGrid(500, 0.1)
	pose := geometry.Pose{X: 0, Y: 0, Yaw: 0}
	scan := Scan{RangeMin: 0.1, Ranges: []float64{2.0}}
	for i := 0; i < 5; i++ {
		g.MergeScan(pose, scan)
	}
	assert.EqualValues(t, 4, g.At(0.26+2.0, 0))
}

func TestMergeScanClearsFootprint(t *testing.T) {
	g := NewGrid(500, 0.1)
	g.Set(0.1, 0.1, 4)
	g.MergeScan(geometry.Pose{}, Scan{RangeMin: 0.1, Ranges: []float64{2.0}})
	assert.Zero(t, g.At(0.1, 0.1))
}

func TestDecodeRangeStatusCodes(t *testing.T) {
	for _, tc := range []struct {
		rho  float64
		want float64
		ok   bool
	}{
		{0, 22.0, true},
		{0.006, 5.7, true},
		{0.016, 5.0, true},
		{0.05, 0, false},
		{2.5, 2.5, true},
	} {
		got, ok := decodeRange(tc.rho, 0.1)
		assert.Equal(t, tc.ok, ok, "rho=%f", tc.rho)
		if ok {
			assert.InDelta(t, tc.want, got, 1e-9, "rho=%f", tc.rho)
		}
	}
}

func TestTestArcMatchesSampledPoints(t *testing.T) {
	g := NewGrid(500, 0.1)
	start := geometry.Pose{X: 0, Y: 0, Yaw: 0}
	assert.True(t, g.TestArc(start, 0, 1.0))

	g.Set(0.5, 0, 4)
	assert.False(t, g.TestArc(start, 0, 1.0))
}

func TestSnapshotOnlyContainsOccupiedCells(t *testing.T) {
	g := NewGrid(200, 0.1)
	g.Set(1.0, 1.0, 3)
	cloud := g.Snapshot()
	assert.Equal(t, 1, cloud.Size())
	cloud.Iterate(func(p r3.Vector, d pointcloud.Data) bool {
		assert.Equal(t, 3, d.Value())
		return true
	})
}
