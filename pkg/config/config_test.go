package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	tol := Default()
	require.NoError(t, tol.Validate())
	assert.Equal(t, EpsilonVertexCoincident, tol.EpsilonVertexCoincident)
	assert.Equal(t, tol.EpsilonVertexCoincident, tol.EpsilonCoincidentDistance)
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	tol, err := Parse([]byte(`
[tolerances]
epsilon_vertex_coincident = 1e-6
minimum_parameter_separation = 0.001
`))
	require.NoError(t, err)
	assert.Equal(t, 1e-6, tol.EpsilonVertexCoincident)
	assert.Equal(t, 0.001, tol.MinimumParameterSeparation)
	assert.Equal(t, FloatDivisionEpsilon, tol.FloatDivisionEpsilon)
	assert.Equal(t, WorkspaceSize, tol.WorkspaceSize)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[tolerances\n"},
		{"unknown key", "[tolerances]\nepsilon_bogus = 1.0\n"},
		{"non-positive", "[tolerances]\nepsilon_parameter = 0.0\n"},
		{"negative", "[tolerances]\nworkspace_size = -1.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tol.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tolerances]\nepsilon_coincident_distance = 1e-7\n"), 0o644))

	tol, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-7, tol.EpsilonCoincidentDistance)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
