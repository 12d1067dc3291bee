package domain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mappings holds the classification partitions and dataset bounds consumed
// by Classify and BuildIncidents. The partitions are configuration, not
// logic: they can be overridden from a YAML file without touching the
// derivation code.
type Mappings struct {
	// Regions partitions two-letter state codes into macro-regions.
	// Codes absent from every list classify as "Other".
	Regions map[string][]string `yaml:"regions"`

	// Seasons partitions the twelve month labels into seasons.
	// Unrecognized months classify as "Unknown".
	Seasons map[string][]string `yaml:"seasons"`

	// HumanCauses enumerates the cause labels attributed to human activity.
	HumanCauses []string `yaml:"human_causes"`

	// NaturalCause is the single cause label for the natural-aggregate
	// filter mode.
	NaturalCause string `yaml:"natural_cause"`

	// YearMin and YearMax are the inclusive discovery-year bounds of the
	// dataset. Rows outside the bounds are rejected; the year-month
	// frequency matrix spans exactly this range.
	YearMin int `yaml:"year_min"`
	YearMax int `yaml:"year_max"`

	regionByState map[string]string
	seasonByMonth map[string]string
	humanCauseSet map[string]bool
}

// DefaultMappings returns the compiled-in classification tables: US Census
// macro-regions, meteorological seasons, and the human-attributable cause
// set used by the federal wildfire occurrence database.
func DefaultMappings() Mappings {
	m := Mappings{
		Regions: map[string][]string{
			"West": {"WA", "OR", "CA", "NV", "ID", "MT", "WY", "UT", "CO", "AZ", "NM", "AK", "HI"},
			"South": {"TX", "OK", "AR", "LA", "MS", "AL", "TN", "KY", "GA", "FL", "SC", "NC",
				"VA", "WV", "MD", "DE", "DC", "PR"},
			"Midwest":   {"ND", "SD", "NE", "KS", "MN", "IA", "MO", "WI", "IL", "MI", "IN", "OH"},
			"Northeast": {"PA", "NY", "NJ", "CT", "RI", "MA", "VT", "NH", "ME"},
		},
		Seasons: map[string][]string{
			"Winter": {"Dec", "Jan", "Feb"},
			"Spring": {"Mar", "Apr", "May"},
			"Summer": {"Jun", "Jul", "Aug"},
			"Fall":   {"Sep", "Oct", "Nov"},
		},
		HumanCauses: []string{
			"Arson", "Campfire", "Children", "Debris Burning", "Equipment Use",
			"Fireworks", "Powerline", "Railroad", "Smoking", "Structure",
		},
		NaturalCause: "Lightning",
		YearMin:      1992,
		YearMax:      2015,
	}
	m.buildIndexes()
	return m
}

// LoadMappings reads classification tables from a YAML file and validates
// them. An empty path returns DefaultMappings.
func LoadMappings(path string) (Mappings, error) {
	if path == "" {
		return DefaultMappings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Mappings{}, fmt.Errorf("read mappings file: %w", err)
	}

	var m Mappings
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Mappings{}, fmt.Errorf("parse mappings file: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Mappings{}, fmt.Errorf("invalid mappings file %s: %w", path, err)
	}

	m.buildIndexes()
	return m, nil
}

// Validate checks structural requirements: non-empty partitions, a natural
// cause label, sane year bounds, and no state or month assigned to two
// buckets.
func (m *Mappings) Validate() error {
	if len(m.Regions) == 0 {
		return fmt.Errorf("regions partition is empty")
	}
	if len(m.Seasons) == 0 {
		return fmt.Errorf("seasons partition is empty")
	}
	if m.NaturalCause == "" {
		return fmt.Errorf("natural_cause is required")
	}
	if m.YearMin <= 0 || m.YearMax <= 0 || m.YearMin > m.YearMax {
		return fmt.Errorf("invalid year bounds %d..%d", m.YearMin, m.YearMax)
	}

	seen := make(map[string]string)
	for region, states := range m.Regions {
		for _, s := range states {
			if prev, ok := seen[s]; ok {
				return fmt.Errorf("state %s assigned to both %s and %s", s, prev, region)
			}
			seen[s] = region
		}
	}

	seen = make(map[string]string)
	for season, months := range m.Seasons {
		for _, mo := range months {
			if MonthIndex(mo) < 0 {
				return fmt.Errorf("season %s references unknown month %q", season, mo)
			}
			if prev, ok := seen[mo]; ok {
				return fmt.Errorf("month %s assigned to both %s and %s", mo, prev, season)
			}
			seen[mo] = season
		}
	}

	return nil
}

// RegionNames returns the configured macro-region names. Order is not
// significant; callers needing determinism should sort.
func (m *Mappings) RegionNames() []string {
	names := make([]string, 0, len(m.Regions))
	for name := range m.Regions {
		names = append(names, name)
	}
	return names
}

func (m *Mappings) buildIndexes() {
	m.regionByState = make(map[string]string)
	for region, states := range m.Regions {
		for _, s := range states {
			m.regionByState[s] = region
		}
	}
	m.seasonByMonth = make(map[string]string)
	for season, months := range m.Seasons {
		for _, mo := range months {
			m.seasonByMonth[mo] = season
		}
	}
	m.humanCauseSet = make(map[string]bool, len(m.HumanCauses))
	for _, c := range m.HumanCauses {
		m.humanCauseSet[c] = true
	}
}

// ensureIndexes builds the lookup indexes on first use for Mappings values
// constructed directly (e.g. struct literals in tests).
func (m *Mappings) ensureIndexes() {
	if m.regionByState == nil {
		m.buildIndexes()
	}
}
