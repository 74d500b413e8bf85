// Package params binds the pipeline's reconfigurable thresholds from
// a generic attribute map. A reconfiguration event decodes a whole new
// Set and swaps it in one atomic store, which is race-free with
// respect to the serialized callback dispatch.
package params

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/fieldcore-robotics/conenav/conedetector"
	"github.com/fieldcore-robotics/conenav/planner"
)

// AttributeMap is an untyped parameter bag, as delivered by the
// parameter service.
type AttributeMap map[string]interface{}

// Set aggregates every runtime-tunable threshold in the pipeline.
type Set struct {
	GridSize       int     `json:"grid_size"`
	GridResolution float64 `json:"grid_resolution"`

	Detector conedetector.Params `json:"detector"`
	Planner  planner.Params      `json:"planner"`
}

// Defaults returns the Set with every threshold at its default.
func Defaults() Set {
	return Set{
		GridSize:       5000,
		GridResolution: 0.10,
		Detector:       conedetector.DefaultParams(),
		Planner:        planner.DefaultParams(),
	}
}

// FromAttributes decodes attribute overrides on top of the defaults.
// Duration fields accept strings like "10s".
func FromAttributes(attributes AttributeMap) (*Set, error) {
	conf := Defaults()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     &conf,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "decoding pipeline attributes")
	}
	if conf.GridSize <= 0 || conf.GridResolution <= 0 {
		return nil, errors.Errorf("invalid grid dimensions %dx%d at %f m",
			conf.GridSize, conf.GridSize, conf.GridResolution)
	}
	return &conf, nil
}
