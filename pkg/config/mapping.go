package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/trk-racing/chassis-analyzer/pkg/core"
)

// PointColumns names the table columns holding one 3D point.
type PointColumns struct {
	X string `yaml:"x"`
	Y string `yaml:"y"`
	Z string `yaml:"z"`
}

func (p PointColumns) columns() []string {
	return []string{p.X, p.Y, p.Z}
}

// CornerColumns names the columns for one corner's mount geometry. The lower
// control arm is surveyed at two points (front and rear bushing); the loader
// midpoints them into the corner's single lower mount. LCARear may be left
// empty when only one LCA point was surveyed.
type CornerColumns struct {
	Upper    PointColumns `yaml:"upper"`
	LCAFront PointColumns `yaml:"lcaFront"`
	LCARear  PointColumns `yaml:"lcaRear,omitempty"`
}

// HasLCARear reports whether a second LCA survey point is mapped.
func (c CornerColumns) HasLCARear() bool {
	return c.LCARear.X != "" || c.LCARear.Y != "" || c.LCARear.Z != ""
}

// ColumnMapping binds the survey table's columns to the analyzer's data
// model. It is saved and reloaded between sessions as yaml.
type ColumnMapping struct {
	Clip          string `yaml:"clip"`
	CenterSection string `yaml:"centerSection"`
	// TrackType is optional; when empty no track tag is loaded.
	TrackType string                        `yaml:"trackType,omitempty"`
	Corners   map[core.Corner]CornerColumns `yaml:"corners"`
}

// ParseColumnMapping decodes and validates a yaml column mapping.
func ParseColumnMapping(data []byte) (*ColumnMapping, error) {
	var m ColumnMapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing column mapping: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Marshal serializes the mapping for the save-configuration workflow.
func (m *ColumnMapping) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Validate checks that every required column is named and every corner key
// is a real corner.
func (m *ColumnMapping) Validate() error {
	if m.Clip == "" {
		return fmt.Errorf("column mapping: clip column is required")
	}
	if m.CenterSection == "" {
		return fmt.Errorf("column mapping: centerSection column is required")
	}
	for corner, cols := range m.Corners {
		if _, err := core.ParseCorner(string(corner)); err != nil {
			return fmt.Errorf("column mapping: %w", err)
		}
		for _, name := range cols.Upper.columns() {
			if name == "" {
				return fmt.Errorf("column mapping: corner %s: upper mount needs x, y and z columns", corner)
			}
		}
		for _, name := range cols.LCAFront.columns() {
			if name == "" {
				return fmt.Errorf("column mapping: corner %s: lcaFront needs x, y and z columns", corner)
			}
		}
		if cols.HasLCARear() {
			for _, name := range cols.LCARear.columns() {
				if name == "" {
					return fmt.Errorf("column mapping: corner %s: lcaRear needs x, y and z columns when set", corner)
				}
			}
		}
	}
	for _, c := range core.Corners {
		if _, ok := m.Corners[c]; !ok {
			return fmt.Errorf("column mapping: corner %s is not mapped", c)
		}
	}
	return nil
}

// MissingColumns returns every mapped column name absent from the table
// header, so the caller can report the full list at once instead of failing
// on the first.
func (m *ColumnMapping) MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	seen := make(map[string]bool)
	report := func(name string) {
		if name != "" && !present[name] && !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
	}
	report(m.Clip)
	report(m.CenterSection)
	report(m.TrackType)
	for _, corner := range core.Corners {
		cols := m.Corners[corner]
		for _, name := range cols.Upper.columns() {
			report(name)
		}
		for _, name := range cols.LCAFront.columns() {
			report(name)
		}
		if cols.HasLCARear() {
			for _, name := range cols.LCARear.columns() {
				report(name)
			}
		}
	}
	return missing
}
