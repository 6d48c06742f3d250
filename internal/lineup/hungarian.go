package lineup

import (
	"fmt"
	"math"

	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

// matrixSolver assigns clips to center sections through an explicit cost
// matrix, cost[i][j] = score of pairing clip i with section j. Sections are
// no longer interchangeable here, so this is a full minimum-cost bipartite
// matching.
type matrixSolver struct {
	spec Spec
}

func (s *matrixSolver) Solve(clips []core.Clip, sections []core.CenterSection) (*core.Lineup, error) {
	rows, cols := s.spec.Costs.Dims()
	if rows != len(clips) || cols != len(sections) {
		return nil, fmt.Errorf("cost matrix is %dx%d, want %dx%d", rows, cols, len(clips), len(sections))
	}
	if len(clips) != len(sections) && !s.spec.AllowTruncation {
		unmatched := len(clips) - len(sections)
		if unmatched < 0 {
			unmatched = -unmatched
		}
		return nil, &core.InfeasibleLineupError{
			Clips:     len(clips),
			Sections:  len(sections),
			Unmatched: unmatched,
		}
	}

	// Pad the rectangular case to square with zero-cost dummies; pairs that
	// land on a dummy row or column are the truncated ones and are dropped
	// from the result.
	n := rows
	if cols > n {
		n = cols
	}
	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			if i < rows && j < cols {
				v := s.spec.Costs.At(i, j)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, fmt.Errorf("cost matrix entry (%d,%d) is not finite", i, j)
				}
				if s.spec.Direction == Maximize {
					v = -v
				}
				cost[i][j] = v
			}
		}
	}

	match := hungarian(cost)

	lineup := &core.Lineup{}
	for i := 0; i < rows; i++ {
		j := match[i]
		if j >= cols {
			continue
		}
		pair := core.PairScore{
			ClipID:          clips[i].ID,
			CenterSectionID: sections[j].ID,
			Score:           s.spec.Costs.At(i, j),
		}
		lineup.Pairs = append(lineup.Pairs, pair)
		lineup.Objective += pair.Score
	}
	return lineup, nil
}

// hungarian solves the square assignment problem on cost, minimizing, and
// returns the column matched to each row. Classic potentials formulation
// with one augmenting path per row, O(n^3) total.
func hungarian(cost [][]float64) []int {
	n := len(cost)
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	// matchCol[j] is the row (1-based) matched to column j; 0 means free.
	matchCol := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		matchCol[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0 := matchCol[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[matchCol[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if matchCol[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			matchCol[j0] = matchCol[j1]
			j0 = j1
		}
	}

	match := make([]int, n)
	for j := 1; j <= n; j++ {
		if matchCol[j] != 0 {
			match[matchCol[j]-1] = j - 1
		}
	}
	return match
}
