package geometry

import (
	"math"

	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

// Calculator turns a configuration's mount geometry into a damper length.
//
// Offset convention: the configuration's offset is the outboard distance from
// the LCA center to the lower damper mount. It displaces the lower mount
// along Y before the distance is taken — left corners toward -Y, right
// corners toward +Y, always by the offset's magnitude. The convention is the
// same for all corners so lengths stay comparable across the table.
type Calculator struct {
	// NormalizeLCAZ substitutes each lower mount Z with its corner's median
	// from Medians before the distance is computed.
	NormalizeLCAZ bool

	// Medians is the per-corner median table for the loaded set. Required
	// when NormalizeLCAZ is set; ignored otherwise.
	Medians CornerMedians
}

// Length computes the damper length for one configuration. It fails with a
// *core.GeometryError when either mount carries a missing or non-numeric
// coordinate; the error is scoped to this row only.
func (c Calculator) Length(cfg core.Configuration) (float64, error) {
	if !cfg.Upper.Valid() {
		return 0, rowError(cfg, "upper")
	}
	if !cfg.Lower.Valid() {
		return 0, rowError(cfg, "lower")
	}

	lower := cfg.Lower
	if c.NormalizeLCAZ {
		if z, ok := c.Medians[cfg.Corner]; ok {
			lower.Z = z
		}
	}
	if cfg.Corner.IsLeft() {
		lower.Y -= math.Abs(cfg.Offset)
	} else {
		lower.Y += math.Abs(cfg.Offset)
	}

	dx := cfg.Upper.X - lower.X
	dy := cfg.Upper.Y - lower.Y
	dz := cfg.Upper.Z - lower.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz), nil
}

// BatchResult carries the rows that computed cleanly alongside the collected
// row-scoped failures. Neither side is ever silently dropped.
type BatchResult struct {
	Rows   []core.Measured
	Errors []error
}

// ComputeAll computes damper lengths for the whole table. Bad rows are
// collected as *core.GeometryError values; good rows keep their original
// order and ordinals.
func (c Calculator) ComputeAll(rows []core.Configuration) BatchResult {
	result := BatchResult{Rows: make([]core.Measured, 0, len(rows))}
	for _, row := range rows {
		length, err := c.Length(row)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Rows = append(result.Rows, core.Measured{
			Configuration: row,
			DamperLength:  length,
		})
	}
	return result
}

func rowError(cfg core.Configuration, field string) *core.GeometryError {
	return &core.GeometryError{
		ClipID:          cfg.ClipID,
		CenterSectionID: cfg.CenterSectionID,
		Corner:          cfg.Corner,
		Field:           field,
	}
}
