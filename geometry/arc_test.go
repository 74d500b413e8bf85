package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArcTraverseStraight(t *testing.T) {
	start := Pose{X: 0, Y: 0, Yaw: 0}
	end := ArcTraverse(start, 0, 5)
	assert.InDelta(t, 5.0, end.X, 1e-9)
	assert.InDelta(t, 0.0, end.Y, 1e-9)
	assert.InDelta(t, 0.0, end.Yaw, 1e-9)
}

func TestArcTraverseQuarterCircle(t *testing.T) {
	start := Pose{X: 0, Y: 0, Yaw: 0}
	r := 1.0
	end := ArcTraverse(start, r, r*math.Pi/2)
	assert.InDelta(t, 1.0, end.X, 1e-9)
	assert.InDelta(t, 1.0, end.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, end.Yaw, 1e-9)
}

func TestArcTraverseRoundTrip(t *testing.T) {
	start := Pose{X: 1, Y: -2, Yaw: 0.7}
	r := 2.3
	l := 1.4
	end := ArcTraverse(start, r, l)
	back := ArcTraverse(end, r, -l)
	assert.InDelta(t, start.X, back.X, 1e-6)
	assert.InDelta(t, start.Y, back.Y, 1e-6)
	assert.InDelta(t, start.Yaw, back.Yaw, 1e-6)
}

func TestArcSampleMatchesTraverseEndpoint(t *testing.T) {
	start := Pose{X: 0, Y: 0, Yaw: 0.2}
	r := 1.5
	l := 3.0
	step := 0.05
	samples := ArcSample(start, r, l, step)
	want := ArcTraverse(start, r, l)
	got := samples[len(samples)-1]
	assert.InDelta(t, want.X, got.X, 1e-6)
	assert.InDelta(t, want.Y, got.Y, 1e-6)
}

func TestArcSampleIdenticalAcrossCalls(t *testing.T) {
	start := Pose{X: 0.1, Y: 0.2, Yaw: 0.3}
	r := -2.0
	l := 1.8
	step := 0.05
	a := ArcSample(start, r, l, step)
	b := ArcSample(start, r, l, step)
	assert.Equal(t, a, b)
}

func TestYawFromQuaternionIdentity(t *testing.T) {
	assert.InDelta(t, 0.0, YawFromQuaternion(0, 0, 0, 1), 1e-9)
}

func TestYawFromQuaternionHalfTurn(t *testing.T) {
	// rotation of pi about Z
	yaw := YawFromQuaternion(0, 0, 1, 0)
	assert.InDelta(t, math.Pi, math.Abs(yaw), 1e-6)
}
