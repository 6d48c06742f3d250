package core

import (
	"fmt"
	"sort"
)

// Clip groups the four corner measurements that will be assigned as a unit
// to a center section. A clip always has exactly one length per corner.
type Clip struct {
	ID      string
	Lengths map[Corner]float64
	// Ordinal is the earliest source-row ordinal among the clip's corners,
	// used for stable tie-breaking.
	Ordinal int
}

// WeightedScore returns the weighted sum of the clip's corner lengths under
// the given weights. Corners absent from the weight map contribute nothing.
func (c Clip) WeightedScore(w CornerWeights) float64 {
	score := 0.0
	for corner, weight := range w {
		score += weight * c.Lengths[corner]
	}
	return score
}

// BuildClips assembles clips from measured rows, grouping by clip id.
// Clips violating the four-corner invariant (a missing corner, or two rows
// for the same corner) are reported as errors and excluded; valid clips are
// still returned, mirroring the row-scoped partial-success policy of the
// calculator. Returned clips keep the order of first appearance in the rows.
func BuildClips(rows []Measured) ([]Clip, []error) {
	byID := make(map[string]*Clip)
	order := []string{}
	dup := map[string]bool{}

	for _, row := range rows {
		clip, ok := byID[row.ClipID]
		if !ok {
			clip = &Clip{
				ID:      row.ClipID,
				Lengths: make(map[Corner]float64, len(Corners)),
				Ordinal: row.Ordinal,
			}
			byID[row.ClipID] = clip
			order = append(order, row.ClipID)
		}
		if _, seen := clip.Lengths[row.Corner]; seen {
			dup[row.ClipID] = true
			continue
		}
		clip.Lengths[row.Corner] = row.DamperLength
		if row.Ordinal < clip.Ordinal {
			clip.Ordinal = row.Ordinal
		}
	}

	var clips []Clip
	var errs []error
	for _, id := range order {
		clip := byID[id]
		if dup[id] {
			errs = append(errs, fmt.Errorf("clip %s: duplicate corner measurement", id))
			continue
		}
		if missing := missingCorners(clip.Lengths); len(missing) > 0 {
			errs = append(errs, fmt.Errorf("clip %s: missing corners %v", id, missing))
			continue
		}
		clips = append(clips, *clip)
	}
	sort.SliceStable(clips, func(i, j int) bool { return clips[i].Ordinal < clips[j].Ordinal })
	return clips, errs
}

func missingCorners(lengths map[Corner]float64) []Corner {
	var missing []Corner
	for _, c := range Corners {
		if _, ok := lengths[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// SectionsFrom extracts the distinct center sections referenced by the rows,
// in order of first appearance.
func SectionsFrom(rows []Measured) []CenterSection {
	seen := make(map[string]bool)
	var sections []CenterSection
	for _, row := range rows {
		if seen[row.CenterSectionID] {
			continue
		}
		seen[row.CenterSectionID] = true
		sections = append(sections, CenterSection{
			ID:      row.CenterSectionID,
			Ordinal: len(sections),
		})
	}
	return sections
}
