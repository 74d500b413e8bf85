package params

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAttributesDefaults(t *testing.T) {
	conf, err := FromAttributes(nil)
	require.NoError(t, err)
	assert.Equal(t, 5000, conf.GridSize)
	assert.InDelta(t, 0.695, conf.Planner.MinRadius, 1e-9)
	assert.InDelta(t, 0.05, conf.Detector.GroupingThreshold, 1e-9)
}

func TestFromAttributesOverrides(t *testing.T) {
	conf, err := FromAttributes(AttributeMap{
		"grid_size": 1000,
		"planner": map[string]interface{}{
			"track_cones": true,
			"max_speed":   2.0,
			"backup_time": "5s",
		},
		"detector": map[string]interface{}{
			"min_circle_size": 6,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1000, conf.GridSize)
	assert.True(t, conf.Planner.TrackCones)
	assert.InDelta(t, 2.0, conf.Planner.MaxSpeed, 1e-9)
	assert.Equal(t, 5*time.Second, conf.Planner.BackupTime)
	assert.Equal(t, 6, conf.Detector.MinCircleSize)

	// untouched fields keep their defaults
	assert.InDelta(t, 0.1, conf.Planner.MinSpeed, 1e-9)
}

func TestFromAttributesRejectsBadGrid(t *testing.T) {
	_, err := FromAttributes(AttributeMap{"grid_size": -1})
	require.Error(t, err)
}
