// Package loader turns a survey table (CSV) into configurations using a
// column mapping. Cell-level problems become NaN coordinates rather than load
// failures, so a bad cell surfaces later as a row-scoped geometry error
// instead of rejecting the whole table.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/trk-racing/chassis-analyzer/pkg/config"
	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

// Loader reads survey tables into the core data model.
type Loader struct {
	mapping  *config.ColumnMapping
	settings *config.Settings
	log      logr.Logger
}

// New builds a Loader. The mapping must already be validated; settings supply
// the per-corner lower-mount offsets stamped onto each configuration.
func New(mapping *config.ColumnMapping, settings *config.Settings, log logr.Logger) *Loader {
	return &Loader{mapping: mapping, settings: settings, log: log}
}

// Load reads a CSV survey table. Each table row expands into four
// configurations, one per corner, all sharing the row's clip and center
// section. Structural problems (missing header columns, unreadable CSV) fail
// the load; unparseable cells load as NaN coordinates.
func (l *Loader) Load(r io.Reader) ([]core.Configuration, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading table header: %w", err)
	}
	if missing := l.mapping.MissingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("table is missing mapped columns: %s", strings.Join(missing, ", "))
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var out []core.Configuration
	ordinal := 0
	rowNum := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading table row %d: %w", rowNum, err)
		}
		rowNum++

		cell := func(column string) string {
			return strings.TrimSpace(record[index[column]])
		}

		clipID := cell(l.mapping.Clip)
		sectionID := cell(l.mapping.CenterSection)
		if clipID == "" || sectionID == "" {
			l.log.V(1).Info("skipping row without clip or center section", "row", rowNum)
			continue
		}
		var track core.TrackType
		if l.mapping.TrackType != "" {
			track = core.TrackType(cell(l.mapping.TrackType))
		}

		for _, corner := range core.Corners {
			cols := l.mapping.Corners[corner]
			cfg := core.Configuration{
				ClipID:          clipID,
				CenterSectionID: sectionID,
				Corner:          corner,
				Upper:           point(cell, cols.Upper, core.RoleUpper),
				Lower:           lowerMount(cell, cols),
				Offset:          l.settings.Offset(corner),
				TrackType:       track,
				Ordinal:         ordinal,
			}
			out = append(out, cfg)
			ordinal++
		}
	}
	l.log.Info("loaded survey table", "rows", rowNum-1, "configurations", len(out))
	return out, nil
}

// lowerMount midpoints the two LCA bushing points into the corner's single
// lower mount. With only a front point mapped, that point is the mount.
func lowerMount(cell func(string) string, cols config.CornerColumns) core.MountPoint {
	front := point(cell, cols.LCAFront, core.RoleLCA)
	if !cols.HasLCARear() {
		return front
	}
	rear := point(cell, cols.LCARear, core.RoleLCA)
	return core.MountPoint{
		X:    (front.X + rear.X) / 2,
		Y:    (front.Y + rear.Y) / 2,
		Z:    (front.Z + rear.Z) / 2,
		Role: core.RoleLCA,
	}
}

func point(cell func(string) string, cols config.PointColumns, role core.MountRole) core.MountPoint {
	return core.MountPoint{
		X:    coordinate(cell(cols.X)),
		Y:    coordinate(cell(cols.Y)),
		Z:    coordinate(cell(cols.Z)),
		Role: role,
	}
}

// coordinate parses one numeric cell. Empty or malformed cells become NaN so
// the geometry engine can attribute the failure to its exact row and mount.
func coordinate(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
