package engine

import (
	"math"
	"sort"

	"github.com/couchcryptid/wildfire-insights/internal/domain"
)

// Each aggregation consumes the active subset, never the full enriched set,
// and applies its own completeness filter: a record missing a field the
// aggregation needs is skipped by that aggregation only, it stays in the
// subset and in every other view. Empty results are explicit nil markers,
// never NaN or a zero masquerading as a measurement.
//
// All aggregations are single-pass over the subset (plus small sorts over
// the grouped output), which keeps a full recompute inside the interactive
// budget on tens of thousands of records.

// WeatherVar selects one of the four weather variables for the windowed-mean
// aggregations.
type WeatherVar string

const (
	VarTemp WeatherVar = "temp"
	VarWind WeatherVar = "wind"
	VarHum  WeatherVar = "humidity"
	VarPrec WeatherVar = "precipitation"
)

func (v WeatherVar) window(inc *domain.Incident) domain.WindowValues {
	switch v {
	case VarTemp:
		return inc.Temp
	case VarWind:
		return inc.Wind
	case VarHum:
		return inc.Hum
	case VarPrec:
		return inc.Prec
	default:
		return domain.WindowValues{}
	}
}

// SizeClassMeans is one size class's mean weather series across the four
// time windows, with the number of records the means were computed from.
type SizeClassMeans struct {
	SizeClass string     `json:"size_class"`
	Means     [4]float64 `json:"means"`
	Count     int        `json:"count"`
}

// WindowMeansBySize computes per-size-class arithmetic means of one weather
// variable at each of the four time windows. Only records with all four
// samples present qualify; classes with zero qualifying records are omitted.
// Output follows size class order A..G.
func WindowMeansBySize(subset []domain.Incident, v WeatherVar) []SizeClassMeans {
	type acc struct {
		sums  [4]float64
		count int
	}
	accs := make(map[string]*acc, len(domain.SizeClasses))

	for i := range subset {
		w := v.window(&subset[i])
		if !w.Complete() {
			continue
		}
		a := accs[subset[i].SizeClass]
		if a == nil {
			a = &acc{}
			accs[subset[i].SizeClass] = a
		}
		for j, p := range w.Values() {
			a.sums[j] += *p
		}
		a.count++
	}

	out := make([]SizeClassMeans, 0, len(accs))
	for _, class := range domain.SizeClasses {
		a := accs[class]
		if a == nil {
			continue
		}
		m := SizeClassMeans{SizeClass: class, Count: a.count}
		for j, s := range a.sums {
			m.Means[j] = s / float64(a.count)
		}
		out = append(out, m)
	}
	return out
}

// DualWindowMeans is a pooled pair of mean weather series, one point per
// time window for each variable.
type DualWindowMeans struct {
	First  [4]float64 `json:"first"`
	Second [4]float64 `json:"second"`
	Count  int        `json:"count"`
}

// DualSeries computes pooled window means for two weather variables over the
// records where both variables are fully sampled. Returns nil when no record
// qualifies.
func DualSeries(subset []domain.Incident, first, second WeatherVar) *DualWindowMeans {
	var sums1, sums2 [4]float64
	var count int

	for i := range subset {
		w1 := first.window(&subset[i])
		w2 := second.window(&subset[i])
		if !w1.Complete() || !w2.Complete() {
			continue
		}
		for j, p := range w1.Values() {
			sums1[j] += *p
		}
		for j, p := range w2.Values() {
			sums2[j] += *p
		}
		count++
	}

	if count == 0 {
		return nil
	}
	out := &DualWindowMeans{Count: count}
	for j := range sums1 {
		out.First[j] = sums1[j] / float64(count)
		out.Second[j] = sums2[j] / float64(count)
	}
	return out
}

// FrequencyMatrix counts incidents per (year, month) cell. The axes always
// span the full declared year range and all twelve months, regardless of
// which cells the subset populates; empty cells hold zero.
type FrequencyMatrix struct {
	YearMin int     `json:"year_min"`
	YearMax int     `json:"year_max"`
	Counts  [][]int `json:"counts"` // [year-YearMin][monthIndex]
}

// YearMonthMatrix builds the full-range frequency matrix for the subset.
func YearMonthMatrix(subset []domain.Incident, yearMin, yearMax int) FrequencyMatrix {
	m := FrequencyMatrix{YearMin: yearMin, YearMax: yearMax}
	m.Counts = make([][]int, yearMax-yearMin+1)
	for i := range m.Counts {
		m.Counts[i] = make([]int, len(domain.Months))
	}

	for i := range subset {
		inc := &subset[i]
		if inc.Year < yearMin || inc.Year > yearMax {
			continue
		}
		mi := domain.MonthIndex(inc.Month)
		if mi < 0 {
			continue
		}
		m.Counts[inc.Year-yearMin][mi]++
	}
	return m
}

// CauseYearSeries is one cause's per-year incident counts.
type CauseYearSeries struct {
	Cause  string `json:"cause"`
	Counts []int  `json:"counts"`
}

// TopCauseSeries is the per-year total series plus per-year series for the
// causes with the largest overall counts in the subset.
type TopCauseSeries struct {
	Years  []int             `json:"years"`
	Total  []int             `json:"total"`
	Causes []CauseYearSeries `json:"causes"`
}

// TopCausesByYear computes per-year totals and the per-year series of the n
// causes with the largest overall (not per-year) counts. Ties in the overall
// count break by first-encountered order in the subset.
func TopCausesByYear(subset []domain.Incident, yearMin, yearMax, n int) TopCauseSeries {
	years := yearMax - yearMin + 1
	out := TopCauseSeries{
		Years: make([]int, years),
		Total: make([]int, years),
	}
	for i := range out.Years {
		out.Years[i] = yearMin + i
	}

	perCause := make(map[string][]int)
	totals := make(map[string]int)
	var order []string

	for i := range subset {
		inc := &subset[i]
		if inc.Year < yearMin || inc.Year > yearMax {
			continue
		}
		yi := inc.Year - yearMin
		out.Total[yi]++
		if _, seen := totals[inc.Cause]; !seen {
			order = append(order, inc.Cause)
			perCause[inc.Cause] = make([]int, years)
		}
		totals[inc.Cause]++
		perCause[inc.Cause][yi]++
	}

	// Stable sort over first-encountered order keeps the documented
	// tie-break deterministic.
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}

	for _, cause := range order {
		out.Causes = append(out.Causes, CauseYearSeries{Cause: cause, Counts: perCause[cause]})
	}
	return out
}

// CauseShare is one cause's count and fraction of the subset.
type CauseShare struct {
	Cause string  `json:"cause"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// CauseDistribution counts incidents per cause, sorted descending by count
// with first-encountered tie-break. Rows whose cause was absent in the raw
// data appear under the explicit "Unknown" bucket; they are never dropped.
func CauseDistribution(subset []domain.Incident) []CauseShare {
	counts := make(map[string]int)
	var order []string
	for i := range subset {
		c := subset[i].Cause
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	total := len(subset)
	out := make([]CauseShare, 0, len(order))
	for _, c := range order {
		out = append(out, CauseShare{
			Cause: c,
			Count: counts[c],
			Share: float64(counts[c]) / float64(total),
		})
	}
	return out
}

// HistogramBin is one bin of the acreage histogram. Bounds are in acres,
// not log space; Low is inclusive, High exclusive except for the last bin.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// SizeHistogram is the log-scale acreage histogram with summary statistics
// over the qualifying values.
type SizeHistogram struct {
	Bins   []HistogramBin `json:"bins"`
	Mean   float64        `json:"mean"`
	Median float64        `json:"median"`
	Count  int            `json:"count"`
}

// AcreageHistogram builds a fixed-bin histogram over log10 of fire size for
// records with a present, positive acreage. Returns nil when no record
// qualifies, so an all-missing subset yields "no data" rather than NaN
// statistics.
func AcreageHistogram(subset []domain.Incident, bins int) *SizeHistogram {
	var values []float64
	var sum float64
	for i := range subset {
		a := subset[i].SizeAcres
		if a == nil || *a <= 0 {
			continue
		}
		values = append(values, *a)
		sum += *a
	}
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	logMin := math.Log10(sorted[0])
	logMax := math.Log10(sorted[len(sorted)-1])
	width := (logMax - logMin) / float64(bins)

	h := &SizeHistogram{
		Bins:   make([]HistogramBin, bins),
		Mean:   sum / float64(len(values)),
		Median: median(sorted),
		Count:  len(values),
	}
	for i := range h.Bins {
		h.Bins[i].Low = math.Pow(10, logMin+float64(i)*width)
		h.Bins[i].High = math.Pow(10, logMin+float64(i+1)*width)
	}

	for _, v := range values {
		idx := bins - 1
		if width > 0 {
			idx = int((math.Log10(v) - logMin) / width)
			if idx >= bins {
				idx = bins - 1 // the observed max lands in the last bin
			}
		}
		h.Bins[idx].Count++
	}
	return h
}

// median expects a sorted slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// LocationSummary is one state's incident count, mean acreage over records
// with acreage present, and its single most frequent cause.
type LocationSummary struct {
	State      string   `json:"state"`
	Count      int      `json:"count"`
	MeanAcres  *float64 `json:"mean_acres,omitempty"`
	TopCause   string   `json:"top_cause"`
	CauseCount int      `json:"cause_count"`
}

// LocationSummaries groups the subset by state. The most frequent cause per
// state breaks ties by first-encountered order within that state's records;
// states are ordered by descending count with the same tie-break.
func LocationSummaries(subset []domain.Incident) []LocationSummary {
	type acc struct {
		count      int
		acreSum    float64
		acreCount  int
		causeCount map[string]int
		causeOrder []string
	}
	accs := make(map[string]*acc)
	var order []string

	for i := range subset {
		inc := &subset[i]
		a := accs[inc.State]
		if a == nil {
			a = &acc{causeCount: make(map[string]int)}
			accs[inc.State] = a
			order = append(order, inc.State)
		}
		a.count++
		if inc.SizeAcres != nil {
			a.acreSum += *inc.SizeAcres
			a.acreCount++
		}
		if _, seen := a.causeCount[inc.Cause]; !seen {
			a.causeOrder = append(a.causeOrder, inc.Cause)
		}
		a.causeCount[inc.Cause]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return accs[order[i]].count > accs[order[j]].count
	})

	out := make([]LocationSummary, 0, len(order))
	for _, state := range order {
		a := accs[state]
		s := LocationSummary{State: state, Count: a.count}
		if a.acreCount > 0 {
			mean := a.acreSum / float64(a.acreCount)
			s.MeanAcres = &mean
		}
		for _, c := range a.causeOrder {
			if a.causeCount[c] > s.CauseCount {
				s.TopCause = c
				s.CauseCount = a.causeCount[c]
			}
		}
		out = append(out, s)
	}
	return out
}
