package core

import "fmt"

// GeometryError reports bad or missing coordinate data for a single row.
// It is row-scoped: one bad row never aborts the batch.
type GeometryError struct {
	ClipID          string
	CenterSectionID string
	Corner          Corner
	// Field names the offending mount or coordinate, e.g. "upper" or "lower".
	Field string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry: clip %s / section %s / corner %s: %s mount has missing or non-numeric coordinates",
		e.ClipID, e.CenterSectionID, e.Corner, e.Field)
}

// RankingError reports an invalid ranking scope or selector. It indicates a
// caller programming error and aborts only the one ranking operation.
type RankingError struct {
	Scope string
}

func (e *RankingError) Error() string {
	return fmt.Sprintf("ranking: invalid scope %q", e.Scope)
}

// InfeasibleLineupError reports that no complete lineup exists because the
// clip and center-section counts differ. Unmatched carries the size of the
// excess so the caller can decide on remediation.
type InfeasibleLineupError struct {
	Clips     int
	Sections  int
	Unmatched int
}

func (e *InfeasibleLineupError) Error() string {
	return fmt.Sprintf("lineup infeasible: %d clips vs %d center sections (%d unmatched)",
		e.Clips, e.Sections, e.Unmatched)
}
