// Package config holds the user-driven analyzer settings and the column
// mapping that binds a survey table to the geometry engine. Both are explicit
// structs passed into the core, never ambient globals.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

// Optimization directions for the lineup builder.
const (
	DirectionMinimize = "minimize"
	DirectionMaximize = "maximize"
)

// Settings collects every knob the display layer exposes for one analysis
// session. Zero values are filled from Default on load.
type Settings struct {
	// NormalizeLCAZ replaces each lower control arm Z with its corner's
	// median before damper lengths are computed.
	NormalizeLCAZ bool `mapstructure:"normalizeLCAZ" yaml:"normalizeLCAZ"`

	// RankDescending flips rankings to longest-first.
	RankDescending bool `mapstructure:"rankDescending" yaml:"rankDescending"`

	// Direction selects whether the lineup objective is minimized or
	// maximized.
	Direction string `mapstructure:"direction" yaml:"direction"`

	// CornerWeights maps corner names (LF, RF, LR, RR) to objective weights.
	CornerWeights map[string]float64 `mapstructure:"cornerWeights" yaml:"cornerWeights"`

	// Offsets maps corner names to the outboard lower-mount offset applied
	// before the damper length distance is taken.
	Offsets map[string]float64 `mapstructure:"offsets" yaml:"offsets"`
}

// Default returns the settings the original survey workflow ships with:
// uniform corner weights and the stock lower-mount offsets per corner.
func Default() *Settings {
	return &Settings{
		NormalizeLCAZ: true,
		Direction:     DirectionMinimize,
		CornerWeights: map[string]float64{"LF": 25, "RF": 25, "LR": 25, "RR": 25},
		Offsets:       map[string]float64{"LF": 12.1, "RF": 12.6, "LR": 14.5, "RR": 15.6},
	}
}

// Validate checks for invalid configuration values.
func (s *Settings) Validate() error {
	if s.Direction != DirectionMinimize && s.Direction != DirectionMaximize {
		return fmt.Errorf("direction must be %q or %q, got %q", DirectionMinimize, DirectionMaximize, s.Direction)
	}
	weights, err := s.Weights()
	if err != nil {
		return err
	}
	if err := weights.Validate(); err != nil {
		return err
	}
	for name, offset := range s.Offsets {
		if _, err := core.ParseCorner(name); err != nil {
			return fmt.Errorf("offsets: %w", err)
		}
		if offset < 0 {
			return fmt.Errorf("offset for %s must be >= 0, got %g", name, offset)
		}
	}
	return nil
}

// Weights converts the string-keyed weight map into core.CornerWeights.
func (s *Settings) Weights() (core.CornerWeights, error) {
	out := make(core.CornerWeights, len(s.CornerWeights))
	for name, v := range s.CornerWeights {
		corner, err := core.ParseCorner(name)
		if err != nil {
			return nil, fmt.Errorf("cornerWeights: %w", err)
		}
		out[corner] = v
	}
	return out, nil
}

// Offset returns the configured outboard offset for a corner, zero if unset.
func (s *Settings) Offset(c core.Corner) float64 {
	return s.Offsets[string(c)]
}

// Load reads settings from the given file path, layering file values over
// Default and allowing CHASSIS_* environment overrides.
func Load(path string) (*Settings, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	return unmarshalSettings(v)
}

// Read parses yaml settings from a reader, layered over Default. It backs
// Load and is the seam the tests use.
func Read(r io.Reader) (*Settings, error) {
	v := newViper()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return unmarshalSettings(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := Default()
	v.SetDefault("normalizeLCAZ", defaults.NormalizeLCAZ)
	v.SetDefault("rankDescending", defaults.RankDescending)
	v.SetDefault("direction", defaults.Direction)
	v.SetDefault("cornerWeights", defaults.CornerWeights)
	v.SetDefault("offsets", defaults.Offsets)
	v.SetEnvPrefix("CHASSIS")
	v.AutomaticEnv()
	return v
}

func unmarshalSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
