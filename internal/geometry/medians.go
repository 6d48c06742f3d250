package geometry

import (
	"sort"

	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

// CornerMedians holds the median lower-mount Z per corner for one loaded
// table. It is derived state: recompute it whenever the table changes, never
// carry it across loads.
type CornerMedians map[core.Corner]float64

// MedianZByCorner computes the per-corner median of the lower mount Z values.
// Corners with fewer than two valid measurements are omitted, which makes
// normalization a no-op for them (a single value is its own median anyway,
// and an empty corner has nothing to normalize).
func MedianZByCorner(rows []core.Configuration) CornerMedians {
	zs := make(map[core.Corner][]float64)
	for _, row := range rows {
		if !row.Lower.Valid() {
			continue
		}
		zs[row.Corner] = append(zs[row.Corner], row.Lower.Z)
	}
	medians := make(CornerMedians, len(zs))
	for corner, values := range zs {
		if len(values) < 2 {
			continue
		}
		medians[corner] = median(values)
	}
	return medians
}

// median returns the conventional median: the middle element for odd counts,
// the mean of the two middle elements for even counts.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	if len(sorted)%2 == 0 {
		return (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	return sorted[len(sorted)/2]
}
