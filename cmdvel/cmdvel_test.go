package cmdvel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimit(t *testing.T) {
	const maxAccel = 0.3
	for _, tc := range []struct {
		name              string
		measured, desired float64
		want              float64
	}{
		{"accelerates by at most maxAccel", 0.5, 1.5, 0.8},
		{"reaches desired when within bound", 0.5, 0.6, 0.6},
		{"starts from rest at maxAccel", 0.0, 1.5, 0.3},
		{"deceleration unbounded", 1.5, 0.1, 0.1},
		{"stop is immediate", 1.5, 0.0, 0.0},
		{"reverse from rest at -maxAccel", 0.0, -0.2, -0.3},
		{"reverse accelerates by at most maxAccel", -0.1, -1.0, -0.4},
		{"reverse reaches desired when within bound", -0.2, -0.3, -0.3},
		{"forward-to-reverse snaps to -maxAccel", 0.8, -0.2, -0.3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Limit(tc.measured, tc.desired, maxAccel), 1e-9)
		})
	}
}

func TestConvert(t *testing.T) {
	cmd := Convert(0.4, 2.0)
	assert.InDelta(t, 0.4, cmd.LinearX, 1e-9)
	assert.InDelta(t, 0.2, cmd.AngularZ, 1e-9)

	straight := Convert(1.0, 0)
	assert.InDelta(t, 0.0, straight.AngularZ, 1e-9)

	right := Convert(0.4, -2.0)
	assert.InDelta(t, -0.2, right.AngularZ, 1e-9)
}
