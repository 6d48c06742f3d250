// Package lineup solves the clip / center-section assignment problem.
//
// The lineup builder pairs every clip with exactly one center section so
// that the weighted sum of corner damper lengths across all pairs is
// minimized (or maximized). Two solvers sit behind one interface:
//
//   - ranked: center sections are interchangeable, so the optimal lineup is
//     the clips sorted by weighted score — O(n log n). This is the path the
//     survey workflow uses.
//   - matrix: a caller-supplied clip x section cost matrix captures
//     section-specific modifiers; solved as a minimum-cost bipartite
//     matching (Hungarian algorithm, O(n^3)).
//
// NewSolver picks the path from the spec, so adding a cost matrix later is
// not an API change.
//
// Example usage:
//
//	solver, err := lineup.NewSolver(lineup.Spec{
//	    Weights:   core.UniformWeights(),
//	    Direction: lineup.Minimize,
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := solver.Solve(clips, sections)
//
// The solver is deterministic: identical scores and weights always yield
// the same lineup, with ties broken by original table order.
package lineup
