package ranking

import (
	"sort"

	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

// ClipReport is the per-clip ranking summary the display layer renders:
// competition positions per corner plus the weighted axle scores the survey
// workflow uses (the left corner counts double on each axle).
type ClipReport struct {
	ClipID        string
	CornerRanks   map[core.Corner]int
	FrontScore    float64
	RearScore     float64
	FrontPosition int
	RearPosition  int
}

// Report builds clip ranking summaries from complete clips. Corner positions
// use the same direction as Rank; the weighted scores rank lower-is-better
// regardless of direction because they are built from positions.
func Report(clips []core.Clip, descending bool) []ClipReport {
	if len(clips) == 0 {
		return nil
	}

	ranks := make(map[core.Corner]map[string]int, len(core.Corners))
	for _, corner := range core.Corners {
		ranks[corner] = cornerPositions(clips, corner, descending)
	}

	reports := make([]ClipReport, len(clips))
	for i, clip := range clips {
		r := ClipReport{
			ClipID:      clip.ID,
			CornerRanks: make(map[core.Corner]int, len(core.Corners)),
		}
		for _, corner := range core.Corners {
			r.CornerRanks[corner] = ranks[corner][clip.ID]
		}
		r.FrontScore = 2*float64(r.CornerRanks[core.CornerLF]) + float64(r.CornerRanks[core.CornerRF])
		r.RearScore = 2*float64(r.CornerRanks[core.CornerLR]) + float64(r.CornerRanks[core.CornerRR])
		reports[i] = r
	}

	assignPositions(reports, func(r ClipReport) float64 { return r.FrontScore },
		func(r *ClipReport, p int) { r.FrontPosition = p })
	assignPositions(reports, func(r ClipReport) float64 { return r.RearScore },
		func(r *ClipReport, p int) { r.RearPosition = p })
	return reports
}

func cornerPositions(clips []core.Clip, corner core.Corner, descending bool) map[string]int {
	idx := make([]int, len(clips))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := clips[idx[a]].Lengths[corner], clips[idx[b]].Lengths[corner]
		if va != vb {
			if descending {
				return va > vb
			}
			return va < vb
		}
		return clips[idx[a]].Ordinal < clips[idx[b]].Ordinal
	})
	positions := make(map[string]int, len(clips))
	for rank, i := range idx {
		if rank > 0 && clips[i].Lengths[corner] == clips[idx[rank-1]].Lengths[corner] {
			positions[clips[i].ID] = positions[clips[idx[rank-1]].ID]
			continue
		}
		positions[clips[i].ID] = rank + 1
	}
	return positions
}

// assignPositions sets competition positions for a weighted score: 1 plus
// the number of strictly better clips, so ties share the minimum position.
func assignPositions(reports []ClipReport, score func(ClipReport) float64, set func(*ClipReport, int)) {
	for i := range reports {
		pos := 1
		for j := range reports {
			if score(reports[j]) < score(reports[i]) {
				pos++
			}
		}
		set(&reports[i], pos)
	}
}
