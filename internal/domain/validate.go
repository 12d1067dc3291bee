package domain

import (
	"strconv"
	"strings"
)

// Rejection reasons reported in LoadStats and used as metric labels.
const (
	RejectMissingState   = "missing_state"
	RejectBadYear        = "bad_year"
	RejectBadSizeClass   = "bad_size_class"
	RejectYearOutOfRange = "year_out_of_range"
)

// LoadStats summarizes one BuildIncidents run. Rejections are data-quality
// exclusions, not errors: they surface only as counts.
type LoadStats struct {
	Accepted int
	Rejected map[string]int
}

// RejectedTotal returns the total number of dropped rows.
func (s LoadStats) RejectedTotal() int {
	var n int
	for _, c := range s.Rejected {
		n += c
	}
	return n
}

// BuildIncidents validates and enriches raw CSV rows into the immutable
// incident set, preserving input order. Malformed rows are dropped silently:
// a row is rejected when its size class is not A-G, its state code is empty,
// or its year is missing, unparseable, or outside the dataset bounds. Weather
// cells equal to the -1 sentinel (or unparseable) become nil. The raw input
// is never mutated.
func BuildIncidents(rows []RawIncidentRow, m Mappings) ([]Incident, LoadStats) {
	stats := LoadStats{Rejected: make(map[string]int)}
	incidents := make([]Incident, 0, len(rows))

	for _, row := range rows {
		state := strings.ToUpper(strings.TrimSpace(row.State))
		if state == "" {
			stats.Rejected[RejectMissingState]++
			continue
		}

		sizeClass := strings.ToUpper(strings.TrimSpace(row.SizeClass))
		if !ValidSizeClass(sizeClass) {
			stats.Rejected[RejectBadSizeClass]++
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(row.FireYear))
		if err != nil {
			stats.Rejected[RejectBadYear]++
			continue
		}
		if year < m.YearMin || year > m.YearMax {
			stats.Rejected[RejectYearOutOfRange]++
			continue
		}

		cause := strings.TrimSpace(row.Cause)
		if cause == "" {
			cause = UnknownCause
		}

		inc := Incident{
			State:     state,
			Year:      year,
			Month:     strings.TrimSpace(row.DiscMonth),
			Cause:     cause,
			SizeClass: sizeClass,
			SizeAcres: parseAcres(row.SizeAcres),
			Temp:      parseWindow(row.Temp),
			Wind:      parseWindow(row.Wind),
			Hum:       parseWindow(row.Hum),
			Prec:      parseWindow(row.Prec),
		}

		incidents = append(incidents, m.Classify(inc))
		stats.Accepted++
	}

	return incidents, stats
}

// parseAcres parses the fire size column. Absent, unparseable, or negative
// values become nil.
func parseAcres(s string) *float64 {
	v, ok := parseMeasurement(s)
	if !ok || v < 0 {
		return nil
	}
	return &v
}

// parseWindow parses one weather variable's four samples, normalizing the
// missing sentinel to nil.
func parseWindow(raw RawWindowValues) WindowValues {
	return WindowValues{
		Pre30: parseSample(raw.Pre30),
		Pre15: parseSample(raw.Pre15),
		Pre7:  parseSample(raw.Pre7),
		Cont:  parseSample(raw.Cont),
	}
}

func parseSample(s string) *float64 {
	v, ok := parseMeasurement(s)
	if !ok || v == MissingSentinel {
		return nil
	}
	return &v
}

func parseMeasurement(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
