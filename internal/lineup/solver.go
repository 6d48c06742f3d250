package lineup

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

// Direction selects the optimization sense of the lineup objective.
type Direction string

const (
	Minimize Direction = "minimize"
	Maximize Direction = "maximize"
)

// Spec configures a lineup solve.
type Spec struct {
	// Weights define the objective term per corner. Nil means uniform.
	Weights core.CornerWeights

	// Direction defaults to Minimize.
	Direction Direction

	// AllowTruncation drops the worst-scoring excess clips (or the surplus
	// sections) when the counts differ, instead of failing. Truncation is
	// always this explicit opt-in, never silent.
	AllowTruncation bool

	// Costs, when set, is the full |clips| x |sections| pair score matrix
	// and replaces the weighted corner objective. It captures
	// section-specific modifiers that make sections non-interchangeable.
	Costs *mat.Dense
}

// Solver finds a bijection between clips and center sections.
type Solver interface {
	Solve(clips []core.Clip, sections []core.CenterSection) (*core.Lineup, error)
}

// NewSolver picks the solver implementation for the spec: the sorted-order
// path when sections are interchangeable, the bipartite matching path when a
// cost matrix is supplied.
func NewSolver(spec Spec) (Solver, error) {
	if spec.Direction == "" {
		spec.Direction = Minimize
	}
	if spec.Direction != Minimize && spec.Direction != Maximize {
		return nil, fmt.Errorf("unsupported direction: %q", spec.Direction)
	}
	if spec.Costs != nil {
		return &matrixSolver{spec: spec}, nil
	}
	if spec.Weights == nil {
		spec.Weights = core.UniformWeights()
	}
	if err := spec.Weights.Validate(); err != nil {
		return nil, err
	}
	return &rankedSolver{spec: spec}, nil
}

// rankedSolver handles interchangeable center sections. Every bijection of
// the same clip set realizes the same objective, so the optimal lineup is
// simply the clips in weighted-score order paired with the sections in
// table order; sorting only matters for presentation and for picking the
// surviving subset under truncation.
type rankedSolver struct {
	spec Spec
}

func (s *rankedSolver) Solve(clips []core.Clip, sections []core.CenterSection) (*core.Lineup, error) {
	clips, sections, err := balance(clips, sections, s.spec, s.score)
	if err != nil {
		return nil, err
	}

	ordered := make([]core.Clip, len(clips))
	copy(ordered, clips)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := s.score(ordered[i]), s.score(ordered[j])
		if si != sj {
			if s.spec.Direction == Maximize {
				return si > sj
			}
			return si < sj
		}
		return ordered[i].Ordinal < ordered[j].Ordinal
	})

	lineup := &core.Lineup{Pairs: make([]core.PairScore, len(ordered))}
	for i, clip := range ordered {
		terms := make(map[core.Corner]float64, len(s.spec.Weights))
		for corner, weight := range s.spec.Weights {
			terms[corner] = weight * clip.Lengths[corner]
		}
		pair := core.PairScore{
			ClipID:          clip.ID,
			CenterSectionID: sections[i].ID,
			CornerTerms:     terms,
			Score:           s.score(clip),
		}
		lineup.Pairs[i] = pair
		lineup.Objective += pair.Score
	}
	return lineup, nil
}

func (s *rankedSolver) score(clip core.Clip) float64 {
	return clip.WeightedScore(s.spec.Weights)
}

// balance enforces the bijection size invariant. On a mismatch it either
// fails with the unmatched count or, under AllowTruncation, keeps the
// best-scoring clips (per direction) or the earliest sections.
func balance(clips []core.Clip, sections []core.CenterSection, spec Spec, score func(core.Clip) float64) ([]core.Clip, []core.CenterSection, error) {
	if len(clips) == len(sections) {
		return clips, sections, nil
	}
	if !spec.AllowTruncation {
		unmatched := len(clips) - len(sections)
		if unmatched < 0 {
			unmatched = -unmatched
		}
		return nil, nil, &core.InfeasibleLineupError{
			Clips:     len(clips),
			Sections:  len(sections),
			Unmatched: unmatched,
		}
	}
	if len(clips) > len(sections) {
		kept := make([]core.Clip, len(clips))
		copy(kept, clips)
		sort.SliceStable(kept, func(i, j int) bool {
			si, sj := score(kept[i]), score(kept[j])
			if si != sj {
				if spec.Direction == Maximize {
					return si > sj
				}
				return si < sj
			}
			return kept[i].Ordinal < kept[j].Ordinal
		})
		kept = kept[:len(sections)]
		// Restore table order so downstream tie-breaking stays stable.
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Ordinal < kept[j].Ordinal })
		return kept, sections, nil
	}
	return clips, sections[:len(clips)], nil
}
