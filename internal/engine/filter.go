package engine

import (
	"github.com/couchcryptid/wildfire-insights/internal/domain"
)

// Filter tokens. FilterAll is the default for every dimension; the two
// aggregate cause modes select human-attributable and natural causes without
// naming a specific label.
const (
	FilterAll             = "all"
	CauseHumanAggregate   = "human-aggregate"
	CauseNaturalAggregate = "natural-aggregate"
)

// FilterState is the single shared filter selection across all views. One
// instance exists per Engine; every aggregated view reads the subset it
// produces, so the views can never disagree about what is selected.
//
// Location and Region model one geographic drill-down dimension, not two:
// setting either to a non-"all" value forces the other back to "all".
type FilterState struct {
	Location  string `json:"location"`
	Region    string `json:"region"`
	YearMin   int    `json:"year_min"`
	YearMax   int    `json:"year_max"`
	Cause     string `json:"cause"`
	SizeClass string `json:"size_class"`
}

// NewFilterState returns the all-default selection spanning the full
// dataset year range.
func NewFilterState(yearMin, yearMax int) FilterState {
	return FilterState{
		Location:  FilterAll,
		Region:    FilterAll,
		YearMin:   yearMin,
		YearMax:   yearMax,
		Cause:     FilterAll,
		SizeClass: FilterAll,
	}
}

// SetLocation selects a single state code, releasing any region selection.
func (f *FilterState) SetLocation(code string) {
	f.Location = code
	if code != FilterAll {
		f.Region = FilterAll
	}
}

// SetRegion selects a macro-region, releasing any location selection.
func (f *FilterState) SetRegion(region string) {
	f.Region = region
	if region != FilterAll {
		f.Location = FilterAll
	}
}

// SetYearRange sets the inclusive year bounds. Out-of-range values are
// clamped to the dataset bounds and an inverted pair is swapped; the call
// always succeeds and always leaves YearMin <= YearMax.
func (f *FilterState) SetYearRange(min, max, boundMin, boundMax int) {
	min = clamp(min, boundMin, boundMax)
	max = clamp(max, boundMin, boundMax)
	if min > max {
		min, max = max, min
	}
	f.YearMin = min
	f.YearMax = max
}

// SetCause selects a cause mode: FilterAll, one of the two aggregates, or a
// specific cause label.
func (f *FilterState) SetCause(value string) {
	f.Cause = value
}

// SetSizeClass selects a single size class.
func (f *FilterState) SetSizeClass(value string) {
	f.SizeClass = value
}

// Reset restores the all-default selection.
func (f *FilterState) Reset(yearMin, yearMax int) {
	*f = NewFilterState(yearMin, yearMax)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Evaluate applies the filter as one AND-ed predicate over the enriched set
// in a single pass, preserving original order. Order matters downstream:
// equal-count ties in the aggregations break by first-encountered position.
// The caller's displayed count is len(result); there is no separate count
// path that could drift from the subset.
func Evaluate(incidents []domain.Incident, f FilterState, naturalCause string) []domain.Incident {
	subset := make([]domain.Incident, 0, len(incidents))
	for i := range incidents {
		inc := &incidents[i]
		if f.Location != FilterAll && inc.State != f.Location {
			continue
		}
		if f.Region != FilterAll && inc.Region != f.Region {
			continue
		}
		if !matchesCause(inc, f.Cause, naturalCause) {
			continue
		}
		if f.SizeClass != FilterAll && inc.SizeClass != f.SizeClass {
			continue
		}
		if inc.Year < f.YearMin || inc.Year > f.YearMax {
			continue
		}
		subset = append(subset, *inc)
	}
	return subset
}

func matchesCause(inc *domain.Incident, mode, naturalCause string) bool {
	switch mode {
	case FilterAll:
		return true
	case CauseHumanAggregate:
		return inc.HumanCaused
	case CauseNaturalAggregate:
		return inc.Cause == naturalCause
	default:
		return inc.Cause == mode
	}
}
