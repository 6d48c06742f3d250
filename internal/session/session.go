// Package session orchestrates one analysis run end to end: it owns the
// loaded table, derives the per-corner median table, and drives the geometry,
// ranking and lineup engines with the session's settings. The display layer
// talks to a Session, never to the engines directly.
package session

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/trk-racing/chassis-analyzer/internal/geometry"
	"github.com/trk-racing/chassis-analyzer/internal/lineup"
	"github.com/trk-racing/chassis-analyzer/internal/ranking"
	"github.com/trk-racing/chassis-analyzer/pkg/config"
	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

// Session is one interactive analysis over a loaded survey table.
type Session struct {
	log      logr.Logger
	settings *config.Settings

	rows    []core.Configuration
	medians geometry.CornerMedians

	// measured caches the last geometry pass; nil until Calculate runs and
	// cleared whenever the table or a geometry-relevant setting changes.
	measured *geometry.BatchResult
}

// New creates an empty session with the given settings. Nil settings fall
// back to the defaults.
func New(settings *config.Settings, log logr.Logger) *Session {
	if settings == nil {
		settings = config.Default()
	}
	return &Session{log: log, settings: settings}
}

// Settings exposes the live settings for the display layer to render.
func (s *Session) Settings() *config.Settings {
	return s.settings
}

// SetTable loads a new table into the session. The per-corner median table is
// derived here, once per load, so repeated recalculations with normalization
// toggled all see the same medians.
func (s *Session) SetTable(rows []core.Configuration) {
	s.rows = rows
	s.medians = geometry.MedianZByCorner(rows)
	s.measured = nil
	s.log.Info("table loaded", "configurations", len(rows), "mediansFor", len(s.medians))
}

// SetNormalizeLCAZ flips median normalization and invalidates computed
// lengths. The median table itself is untouched; it depends on the loaded
// rows only.
func (s *Session) SetNormalizeLCAZ(on bool) {
	if s.settings.NormalizeLCAZ == on {
		return
	}
	s.settings.NormalizeLCAZ = on
	s.measured = nil
}

// Medians returns the session's per-corner lower mount Z medians.
func (s *Session) Medians() geometry.CornerMedians {
	return s.medians
}

// Calculate runs the geometry pass over the loaded table. Row-scoped
// failures come back in the result without blocking the clean rows; the
// result is cached until the table or normalization changes.
func (s *Session) Calculate() geometry.BatchResult {
	if s.measured != nil {
		return *s.measured
	}
	calc := geometry.Calculator{
		NormalizeLCAZ: s.settings.NormalizeLCAZ,
		Medians:       s.medians,
	}
	result := calc.ComputeAll(s.rows)
	for _, err := range result.Errors {
		s.log.V(1).Info("row skipped", "reason", err.Error())
	}
	s.log.Info("damper lengths computed",
		"rows", len(result.Rows), "failed", len(result.Errors))
	s.measured = &result
	return result
}

// Rank orders the computed rows for a scope. The session's rank direction
// applies unless the options set one explicitly via Descending.
func (s *Session) Rank(opts ranking.Options) ([]ranking.Entry, error) {
	if !opts.Descending {
		opts.Descending = s.settings.RankDescending
	}
	return ranking.Rank(s.Calculate().Rows, opts)
}

// Reports builds the per-clip ranking summary for the loaded table. Clips
// with incomplete or failed corners are reported as errors, not dropped
// silently.
func (s *Session) Reports() ([]ranking.ClipReport, []error) {
	clips, errs := core.BuildClips(s.Calculate().Rows)
	return ranking.Report(clips, s.settings.RankDescending), errs
}

// BuildLineup assigns every complete clip to a center section using the
// session's weights and direction.
func (s *Session) BuildLineup(allowTruncation bool) (*core.Lineup, error) {
	measured := s.Calculate()
	clips, errs := core.BuildClips(measured.Rows)
	for _, err := range errs {
		s.log.V(1).Info("clip excluded from lineup", "reason", err.Error())
	}
	sections := core.SectionsFrom(measured.Rows)

	weights, err := s.settings.Weights()
	if err != nil {
		return nil, err
	}
	solver, err := lineup.NewSolver(lineup.Spec{
		Weights:         weights,
		Direction:       lineup.Direction(s.settings.Direction),
		AllowTruncation: allowTruncation,
	})
	if err != nil {
		return nil, err
	}
	result, err := solver.Solve(clips, sections)
	if err != nil {
		return nil, fmt.Errorf("building lineup: %w", err)
	}
	s.log.Info("lineup built", "pairs", len(result.Pairs), "objective", result.Objective)
	return result, nil
}
