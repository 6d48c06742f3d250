// Package core provides the data model shared by the chassis analyzer engines.
//
// This package contains the domain entities that represent one analysis
// session's worth of suspension survey data:
//
//   - Corner: one of the four suspension positions (LF, RF, LR, RR)
//   - MountPoint: a measured 3D mount coordinate with a semantic role
//   - Configuration: one survey row (clip + center section + corner)
//   - Measured: a Configuration with its computed damper length
//   - Clip: the four corner configurations that move as one assignable unit
//   - CenterSection: the assignable counterpart to a Clip in a Lineup
//   - CornerWeights: the per-corner weighting of the lineup objective
//   - Lineup: a clip/center-section bijection with its objective value
//
// These types form the foundation for the geometry, ranking, and lineup
// engines and carry no behavior beyond construction and validation.
//
// The core package is designed to be:
//   - Immutable after load (calculations derive copies, never mutate)
//   - Type-safe with strong domain boundaries
//   - Independent of any I/O or UI concern (pure domain logic)
package core
