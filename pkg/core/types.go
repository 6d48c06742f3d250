package core

import (
	"fmt"
	"math"
)

// Corner identifies one of the four suspension positions.
type Corner string

const (
	CornerLF Corner = "LF"
	CornerRF Corner = "RF"
	CornerLR Corner = "LR"
	CornerRR Corner = "RR"
)

// Corners lists all four corners in conventional order. The order is part of
// the public contract: callers iterating it get deterministic output.
var Corners = []Corner{CornerLF, CornerRF, CornerLR, CornerRR}

// FrontCorners and RearCorners partition Corners by axle.
var (
	FrontCorners = []Corner{CornerLF, CornerRF}
	RearCorners  = []Corner{CornerLR, CornerRR}
)

// ParseCorner converts a string into a Corner.
func ParseCorner(s string) (Corner, error) {
	switch Corner(s) {
	case CornerLF, CornerRF, CornerLR, CornerRR:
		return Corner(s), nil
	}
	return "", fmt.Errorf("unknown corner %q", s)
}

// IsFront reports whether the corner belongs to the front axle.
func (c Corner) IsFront() bool {
	return c == CornerLF || c == CornerRF
}

// IsLeft reports whether the corner is on the left side of the car.
// Side determines the outboard direction for the lower mount offset.
func (c Corner) IsLeft() bool {
	return c == CornerLF || c == CornerLR
}

// MountRole tags a MountPoint with its semantic role.
type MountRole string

const (
	RoleUpper MountRole = "upper"
	RoleLCA   MountRole = "lower-control-arm"
)

// MountPoint is a measured 3D mount coordinate. Immutable once loaded;
// engines that need to adjust a coordinate work on a copy.
type MountPoint struct {
	X, Y, Z float64
	Role    MountRole
}

// Valid reports whether all three coordinates are finite numbers.
func (p MountPoint) Valid() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// TrackType is an opaque category tag attached to a configuration by the
// external classifier. The core only uses it as a filter key.
type TrackType string

const (
	TrackINT     TrackType = "INT"
	TrackST      TrackType = "ST"
	TrackRC      TrackType = "RC"
	TrackUtility TrackType = "Utility"
	TrackSSW     TrackType = "SSW"
	TrackBackup  TrackType = "Backup"
)

// Configuration is one survey row: a single corner of a clip paired with a
// center section, with its measured mount geometry. Created at load time and
// never mutated afterwards.
type Configuration struct {
	ClipID          string
	CenterSectionID string
	Corner          Corner
	Upper           MountPoint
	Lower           MountPoint
	// Offset is the outboard distance from the lower control arm center to
	// the lower damper mount, always recorded as a magnitude.
	Offset    float64
	TrackType TrackType
	// Ordinal is the zero-based position of the source row in the loaded
	// table. It is the tie-breaker that keeps every ordering deterministic.
	Ordinal int
}

// Measured pairs a Configuration with its computed damper length. It is the
// derived view the ranking and lineup engines consume; the underlying
// Configuration stays untouched.
type Measured struct {
	Configuration
	DamperLength float64
}

// CenterSection is an assignable unit that pairs with exactly one Clip in a
// valid Lineup.
type CenterSection struct {
	ID      string
	Ordinal int
}

// CornerWeights maps corners to non-negative objective weights.
type CornerWeights map[Corner]float64

// UniformWeights returns equal weighting across all four corners.
func UniformWeights() CornerWeights {
	return CornerWeights{CornerLF: 25, CornerRF: 25, CornerLR: 25, CornerRR: 25}
}

// Validate checks the weight invariants: no negative weight, and at least
// one weight strictly positive.
func (w CornerWeights) Validate() error {
	positive := false
	for c, v := range w {
		if v < 0 {
			return fmt.Errorf("corner weight %s must be >= 0, got %g", c, v)
		}
		if v > 0 {
			positive = true
		}
	}
	if !positive {
		return fmt.Errorf("at least one corner weight must be > 0")
	}
	return nil
}

// PairScore is the audit record for one assigned clip/center-section pair.
type PairScore struct {
	ClipID          string
	CenterSectionID string
	// CornerTerms holds weight(corner) x length(clip, corner) for each
	// corner that contributed to Score. Empty when the score came from an
	// externally supplied cost matrix.
	CornerTerms map[Corner]float64
	Score       float64
}

// Lineup is a complete bijection between clips and center sections together
// with the realized objective and its per-pair breakdown.
type Lineup struct {
	Pairs     []PairScore
	Objective float64
}
