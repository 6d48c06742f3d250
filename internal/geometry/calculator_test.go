package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

func cfg(corner core.Corner, upper, lower [3]float64, offset float64) core.Configuration {
	return core.Configuration{
		ClipID:          "clip-1",
		CenterSectionID: "cs-1",
		Corner:          corner,
		Upper:           core.MountPoint{X: upper[0], Y: upper[1], Z: upper[2], Role: core.RoleUpper},
		Lower:           core.MountPoint{X: lower[0], Y: lower[1], Z: lower[2], Role: core.RoleLCA},
		Offset:          offset,
	}
}

func TestLengthEuclidean(t *testing.T) {
	// 3-4-12 box: distance 13, no offset.
	c := Calculator{}
	got, err := c.Length(cfg(core.CornerLF, [3]float64{3, 4, 12}, [3]float64{0, 0, 0}, 0))
	require.NoError(t, err)
	assert.InDelta(t, 13.0, got, 1e-12)
}

func TestLengthOffsetConvention(t *testing.T) {
	upper := [3]float64{0, 0, 10}
	lower := [3]float64{0, 0, 0}

	tests := []struct {
		name   string
		corner core.Corner
		offset float64
		want   float64
	}{
		// Left corners shift the lower mount to -Y, right corners to +Y;
		// either way the mount moves away from the upper mount here.
		{name: "LF outboard", corner: core.CornerLF, offset: 5, want: math.Sqrt(25 + 100)},
		{name: "RF outboard", corner: core.CornerRF, offset: 5, want: math.Sqrt(25 + 100)},
		{name: "LR negative offset uses magnitude", corner: core.CornerLR, offset: -5, want: math.Sqrt(25 + 100)},
		{name: "RR zero offset", corner: core.CornerRR, offset: 0, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Calculator{}
			got, err := c.Length(cfg(tt.corner, upper, lower, tt.offset))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestLengthOffsetDirectionIsSideDependent(t *testing.T) {
	// Upper mount sits at +Y. A left corner's lower mount moves to -Y
	// (away, longer damper); a right corner's moves to +Y (toward, shorter).
	upper := [3]float64{0, 10, 0}
	lower := [3]float64{0, 0, 0}

	c := Calculator{}
	left, err := c.Length(cfg(core.CornerLF, upper, lower, 2))
	require.NoError(t, err)
	right, err := c.Length(cfg(core.CornerRF, upper, lower, 2))
	require.NoError(t, err)

	assert.InDelta(t, 12.0, left, 1e-12)
	assert.InDelta(t, 8.0, right, 1e-12)
}

func TestLengthBadCoordinates(t *testing.T) {
	c := Calculator{}
	bad := cfg(core.CornerLF, [3]float64{math.NaN(), 0, 0}, [3]float64{0, 0, 0}, 0)
	_, err := c.Length(bad)
	require.Error(t, err)

	var geomErr *core.GeometryError
	require.True(t, errors.As(err, &geomErr))
	assert.Equal(t, "upper", geomErr.Field)
	assert.Equal(t, core.CornerLF, geomErr.Corner)
}

func TestLengthIdempotent(t *testing.T) {
	c := Calculator{}
	row := cfg(core.CornerRR, [3]float64{1.1, 2.2, 3.3}, [3]float64{4.4, 5.5, 6.6}, 1.234)
	first, err := c.Length(row)
	require.NoError(t, err)
	second, err := c.Length(row)
	require.NoError(t, err)
	assert.Equal(t, first, second, "recomputation must be bit-identical")
}

func TestMedianZByCorner(t *testing.T) {
	rows := []core.Configuration{
		cfg(core.CornerLF, [3]float64{0, 0, 0}, [3]float64{0, 0, 1}, 0),
		cfg(core.CornerLF, [3]float64{0, 0, 0}, [3]float64{0, 0, 3}, 0),
		cfg(core.CornerLF, [3]float64{0, 0, 0}, [3]float64{0, 0, 9}, 0),
		cfg(core.CornerRF, [3]float64{0, 0, 0}, [3]float64{0, 0, 2}, 0),
		cfg(core.CornerRF, [3]float64{0, 0, 0}, [3]float64{0, 0, 4}, 0),
		cfg(core.CornerLR, [3]float64{0, 0, 0}, [3]float64{0, 0, 7}, 0), // lone row
	}
	medians := MedianZByCorner(rows)

	assert.Equal(t, 3.0, medians[core.CornerLF], "odd count takes middle element")
	assert.Equal(t, 3.0, medians[core.CornerRF], "even count averages the middle pair")
	_, ok := medians[core.CornerLR]
	assert.False(t, ok, "corners with <2 rows are left unnormalized")
}

func TestNormalizationUsesCornerMedian(t *testing.T) {
	rows := []core.Configuration{
		cfg(core.CornerLF, [3]float64{0, 0, 10}, [3]float64{0, 0, 0}, 0),
		cfg(core.CornerLF, [3]float64{0, 0, 10}, [3]float64{0, 0, 4}, 0),
		cfg(core.CornerLF, [3]float64{0, 0, 10}, [3]float64{0, 0, 8}, 0),
	}
	medians := MedianZByCorner(rows)
	require.Equal(t, 4.0, medians[core.CornerLF])

	normalized := Calculator{NormalizeLCAZ: true, Medians: medians}
	raw := Calculator{}

	// With normalization every LF row measures against z=4.
	for _, row := range rows {
		got, err := normalized.Length(row)
		require.NoError(t, err)
		assert.InDelta(t, 6.0, got, 1e-12)
	}

	// Disabling the mode restores the raw geometry.
	got, err := raw.Length(rows[0])
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, 1e-12)
}

func TestComputeAllPartialSuccess(t *testing.T) {
	rows := []core.Configuration{
		cfg(core.CornerLF, [3]float64{0, 0, 5}, [3]float64{0, 0, 0}, 0),
		cfg(core.CornerRF, [3]float64{math.NaN(), 0, 0}, [3]float64{0, 0, 0}, 0),
		cfg(core.CornerLR, [3]float64{0, 0, 7}, [3]float64{0, 0, 0}, 0),
	}
	result := Calculator{}.ComputeAll(rows)

	require.Len(t, result.Rows, 2, "good rows survive a bad neighbor")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, core.CornerLF, result.Rows[0].Corner)
	assert.Equal(t, core.CornerLR, result.Rows[1].Corner)

	var geomErr *core.GeometryError
	require.True(t, errors.As(result.Errors[0], &geomErr))
	assert.Equal(t, core.CornerRF, geomErr.Corner)
}

func TestComputeAllNonNegative(t *testing.T) {
	rows := []core.Configuration{
		cfg(core.CornerLF, [3]float64{-3, -4, -12}, [3]float64{0, 0, 0}, 2),
		cfg(core.CornerRR, [3]float64{0, 0, 0}, [3]float64{0, 0, 0}, 0),
	}
	result := Calculator{}.ComputeAll(rows)
	require.Empty(t, result.Errors)
	for _, row := range result.Rows {
		assert.GreaterOrEqual(t, row.DamperLength, 0.0)
	}
}
