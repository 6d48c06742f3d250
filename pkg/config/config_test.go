package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	weights, err := s.Weights()
	require.NoError(t, err)
	assert.Equal(t, core.UniformWeights(), weights)
	assert.Equal(t, 12.1, s.Offset(core.CornerLF))
	assert.Equal(t, 15.6, s.Offset(core.CornerRR))
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		errMsg string
	}{
		{
			name:   "bad direction",
			mutate: func(s *Settings) { s.Direction = "sideways" },
			errMsg: "direction",
		},
		{
			name:   "unknown weight corner",
			mutate: func(s *Settings) { s.CornerWeights["FL"] = 1 },
			errMsg: "unknown corner",
		},
		{
			name:   "negative weight",
			mutate: func(s *Settings) { s.CornerWeights["LF"] = -5 },
			errMsg: "must be >= 0",
		},
		{
			name: "all-zero weights",
			mutate: func(s *Settings) {
				s.CornerWeights = map[string]float64{"LF": 0, "RF": 0}
			},
			errMsg: "at least one",
		},
		{
			name:   "negative offset",
			mutate: func(s *Settings) { s.Offsets["RR"] = -1 },
			errMsg: "offset",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReadLayersOverDefaults(t *testing.T) {
	in := strings.NewReader(`
normalizeLCAZ: false
direction: maximize
cornerWeights:
  LF: 50
  RF: 50
  LR: 0
  RR: 0
`)
	s, err := Read(in)
	require.NoError(t, err)
	assert.False(t, s.NormalizeLCAZ)
	assert.Equal(t, DirectionMaximize, s.Direction)
	assert.Equal(t, 50.0, s.CornerWeights["LF"])
	// Offsets were not mentioned, so the defaults survive.
	assert.Equal(t, 14.5, s.Offset(core.CornerLR))
}

func TestReadRejectsInvalid(t *testing.T) {
	_, err := Read(strings.NewReader("direction: backwards\n"))
	require.Error(t, err)
}

const sampleMapping = `
clip: Clip
centerSection: Center_Section
trackType: Track
corners:
  LF:
    upper: {x: LF_Upper_X, y: LF_Upper_Y, z: LF_Upper_Z}
    lcaFront: {x: LF_LCA_F_X, y: LF_LCA_F_Y, z: LF_LCA_F_Z}
    lcaRear: {x: LF_LCA_R_X, y: LF_LCA_R_Y, z: LF_LCA_R_Z}
  RF:
    upper: {x: RF_Upper_X, y: RF_Upper_Y, z: RF_Upper_Z}
    lcaFront: {x: RF_LCA_F_X, y: RF_LCA_F_Y, z: RF_LCA_F_Z}
  LR:
    upper: {x: LR_Upper_X, y: LR_Upper_Y, z: LR_Upper_Z}
    lcaFront: {x: LR_LCA_F_X, y: LR_LCA_F_Y, z: LR_LCA_F_Z}
  RR:
    upper: {x: RR_Upper_X, y: RR_Upper_Y, z: RR_Upper_Z}
    lcaFront: {x: RR_LCA_F_X, y: RR_LCA_F_Y, z: RR_LCA_F_Z}
`

func TestParseColumnMapping(t *testing.T) {
	m, err := ParseColumnMapping([]byte(sampleMapping))
	require.NoError(t, err)
	assert.Equal(t, "Clip", m.Clip)
	assert.True(t, m.Corners[core.CornerLF].HasLCARear())
	assert.False(t, m.Corners[core.CornerRF].HasLCARear())

	// Round-trips through the save-configuration path.
	out, err := m.Marshal()
	require.NoError(t, err)
	again, err := ParseColumnMapping(out)
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestParseColumnMappingMissingCorner(t *testing.T) {
	partial := `
clip: Clip
centerSection: Center
corners:
  LF:
    upper: {x: a, y: b, z: c}
    lcaFront: {x: d, y: e, z: f}
`
	_, err := ParseColumnMapping([]byte(partial))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not mapped")
}

func TestMissingColumns(t *testing.T) {
	m, err := ParseColumnMapping([]byte(sampleMapping))
	require.NoError(t, err)

	header := []string{"Clip", "Center_Section", "Track", "LF_Upper_X", "LF_Upper_Y"}
	missing := m.MissingColumns(header)
	assert.Contains(t, missing, "LF_Upper_Z")
	assert.Contains(t, missing, "RR_LCA_F_Z")
	assert.NotContains(t, missing, "Clip")
	assert.NotContains(t, missing, "LF_Upper_X")
}
