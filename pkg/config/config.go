// Package config holds the numeric tolerances used across the kernel.
//
// The defaults are compile-time constants. A Tolerances value carries them
// through the construction and topology layers and can be overridden from a
// TOML file:
//
//	[tolerances]
//	epsilon_vertex_coincident = 1e-9
//	minimum_parameter_separation = 1e-6
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	// WorkspaceSize bounds the coordinates of finite geometry.
	WorkspaceSize = 1e6
	// MinimumVertexSeparation is the smallest distance at which two vertices
	// are meaningfully distinct.
	MinimumVertexSeparation = 1e-6
	// EpsilonVertexCoincident is the join-distance below which two points are
	// the same vertex.
	EpsilonVertexCoincident = 1e-9
	// EpsilonCoincidentDistance is the signed distance below which a point
	// lies on a plane.
	EpsilonCoincidentDistance = EpsilonVertexCoincident
	MinimumCrossProductNonColinear = 1e-6
	EpsilonCrossProduct            = 1
	// MinimumParameterSeparation is the smallest curve parameter span a
	// bounded edge or trim may have.
	MinimumParameterSeparation = 1e-6
	// EpsilonParameter is the tolerance used when wrapping periodic
	// parameters.
	EpsilonParameter = 1e-9
	// FloatDivisionEpsilon is the smallest denominator the algebra divides by.
	FloatDivisionEpsilon = 1e-9
)

// Tolerances is the set of thresholds a kernel run uses.
type Tolerances struct {
	WorkspaceSize                  float64 `toml:"workspace_size"`
	MinimumVertexSeparation        float64 `toml:"minimum_vertex_separation"`
	EpsilonVertexCoincident        float64 `toml:"epsilon_vertex_coincident"`
	EpsilonCoincidentDistance      float64 `toml:"epsilon_coincident_distance"`
	MinimumCrossProductNonColinear float64 `toml:"minimum_cross_product_non_colinear"`
	EpsilonCrossProduct            float64 `toml:"epsilon_cross_product"`
	MinimumParameterSeparation     float64 `toml:"minimum_parameter_separation"`
	EpsilonParameter               float64 `toml:"epsilon_parameter"`
	FloatDivisionEpsilon           float64 `toml:"float_division_epsilon"`
}

// Default returns the compile-time tolerances.
func Default() Tolerances {
	return Tolerances{
		WorkspaceSize:                  WorkspaceSize,
		MinimumVertexSeparation:        MinimumVertexSeparation,
		EpsilonVertexCoincident:        EpsilonVertexCoincident,
		EpsilonCoincidentDistance:      EpsilonCoincidentDistance,
		MinimumCrossProductNonColinear: MinimumCrossProductNonColinear,
		EpsilonCrossProduct:            EpsilonCrossProduct,
		MinimumParameterSeparation:     MinimumParameterSeparation,
		EpsilonParameter:               EpsilonParameter,
		FloatDivisionEpsilon:           FloatDivisionEpsilon,
	}
}

type file struct {
	Tolerances Tolerances `toml:"tolerances"`
}

// Parse decodes TOML data over the defaults. Keys that are absent keep their
// default value.
func Parse(data []byte) (Tolerances, error) {
	f := file{Tolerances: Default()}
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Tolerances{}, fmt.Errorf("config: decode: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Tolerances{}, fmt.Errorf("config: unknown key %q", undec[0].String())
	}
	if err := f.Tolerances.Validate(); err != nil {
		return Tolerances{}, err
	}
	return f.Tolerances, nil
}

// Load reads and parses a TOML tolerance file.
func Load(path string) (Tolerances, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tolerances{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Validate rejects non-positive thresholds.
func (t Tolerances) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"workspace_size", t.WorkspaceSize},
		{"minimum_vertex_separation", t.MinimumVertexSeparation},
		{"epsilon_vertex_coincident", t.EpsilonVertexCoincident},
		{"epsilon_coincident_distance", t.EpsilonCoincidentDistance},
		{"minimum_cross_product_non_colinear", t.MinimumCrossProductNonColinear},
		{"epsilon_cross_product", t.EpsilonCrossProduct},
		{"minimum_parameter_separation", t.MinimumParameterSeparation},
		{"epsilon_parameter", t.EpsilonParameter},
		{"float_division_epsilon", t.FloatDivisionEpsilon},
	}
	for _, f := range fields {
		if !(f.v > 0) {
			return fmt.Errorf("config: %s must be positive, got %g", f.name, f.v)
		}
	}
	return nil
}
