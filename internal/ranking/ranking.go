// Package ranking orders configurations and clips by their damper metrics.
package ranking

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

// Scope selects what a ranking is computed over: a single corner's rows, or
// a clip-level aggregate.
type Scope string

const (
	ScopeLF      Scope = "LF"
	ScopeRF      Scope = "RF"
	ScopeLR      Scope = "LR"
	ScopeRR      Scope = "RR"
	ScopeFront   Scope = "front"
	ScopeRear    Scope = "rear"
	ScopeOverall Scope = "overall"
)

// corners returns the corners contributing to the scope, or nil for an
// invalid scope.
func (s Scope) corners() []core.Corner {
	switch s {
	case ScopeLF, ScopeRF, ScopeLR, ScopeRR:
		return []core.Corner{core.Corner(s)}
	case ScopeFront:
		return core.FrontCorners
	case ScopeRear:
		return core.RearCorners
	case ScopeOverall:
		return core.Corners
	}
	return nil
}

func (s Scope) isCorner() bool {
	switch s {
	case ScopeLF, ScopeRF, ScopeLR, ScopeRR:
		return true
	}
	return false
}

// Filter is a row predicate, typically a track-type check. A nil Filter
// keeps every row.
type Filter func(core.Measured) bool

// ByTrackType returns a filter keeping only rows tagged with one of the
// given track types.
func ByTrackType(types ...core.TrackType) Filter {
	keep := make(map[core.TrackType]bool, len(types))
	for _, t := range types {
		keep[t] = true
	}
	return func(row core.Measured) bool {
		return keep[row.TrackType]
	}
}

// Options configure one ranking run.
type Options struct {
	Scope Scope
	// Descending flips to longest-first, the original survey convention.
	Descending bool
	Filter     Filter
}

// Entry is one position in a ranking.
type Entry struct {
	ClipID string
	// CenterSectionID and Corner are set for corner scopes only; aggregate
	// scopes rank whole clips.
	CenterSectionID string
	Corner          core.Corner
	Value           float64
	// Position is the competition rank: 1-based, ties share the minimum
	// position of the tied group.
	Position int
	ordinal  int
}

// Rank orders rows (or clips, for aggregate scopes) by damper length.
// Filtering everything out yields an empty ranking, not an error; only an
// invalid scope fails, with a *core.RankingError.
func Rank(rows []core.Measured, opts Options) ([]Entry, error) {
	scopeCorners := opts.Scope.corners()
	if scopeCorners == nil {
		return nil, &core.RankingError{Scope: string(opts.Scope)}
	}

	kept := rows
	if opts.Filter != nil {
		kept = make([]core.Measured, 0, len(rows))
		for _, row := range rows {
			if opts.Filter(row) {
				kept = append(kept, row)
			}
		}
	}

	var entries []Entry
	if opts.Scope.isCorner() {
		corner := scopeCorners[0]
		for _, row := range kept {
			if row.Corner != corner {
				continue
			}
			entries = append(entries, Entry{
				ClipID:          row.ClipID,
				CenterSectionID: row.CenterSectionID,
				Corner:          corner,
				Value:           row.DamperLength,
				ordinal:         row.Ordinal,
			})
		}
	} else {
		entries = aggregate(kept, scopeCorners)
	}

	order(entries, opts.Descending)
	return entries, nil
}

// aggregate groups rows by clip and takes the mean length over the scope's
// corners. Clips missing one of those corners are skipped; a partial clip
// has no comparable aggregate.
func aggregate(rows []core.Measured, scopeCorners []core.Corner) []Entry {
	type group struct {
		lengths map[core.Corner]float64
		ordinal int
	}
	groups := make(map[string]*group)
	var order []string
	for _, row := range rows {
		g, ok := groups[row.ClipID]
		if !ok {
			g = &group{lengths: make(map[core.Corner]float64), ordinal: row.Ordinal}
			groups[row.ClipID] = g
			order = append(order, row.ClipID)
		}
		g.lengths[row.Corner] = row.DamperLength
		if row.Ordinal < g.ordinal {
			g.ordinal = row.Ordinal
		}
	}

	var entries []Entry
	for _, id := range order {
		g := groups[id]
		values := make([]float64, 0, len(scopeCorners))
		for _, c := range scopeCorners {
			v, ok := g.lengths[c]
			if !ok {
				values = nil
				break
			}
			values = append(values, v)
		}
		if values == nil {
			continue
		}
		entries = append(entries, Entry{
			ClipID:  id,
			Value:   stat.Mean(values, nil),
			ordinal: g.ordinal,
		})
	}
	return entries
}

// order sorts entries by value in the requested direction, keeps original
// table order for ties, and assigns competition positions.
func order(entries []Entry, descending bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			if descending {
				return entries[i].Value > entries[j].Value
			}
			return entries[i].Value < entries[j].Value
		}
		return entries[i].ordinal < entries[j].ordinal
	})
	for i := range entries {
		if i > 0 && entries[i].Value == entries[i-1].Value {
			entries[i].Position = entries[i-1].Position
			continue
		}
		entries[i].Position = i + 1
	}
}
