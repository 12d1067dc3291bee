// Package engine implements the filter-and-aggregation core of the wildfire
// explorer: a single shared filter state over an immutable enriched incident
// set, recomputed into a snapshot of every dashboard view on each change.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wildfire-insights/internal/domain"
	"github.com/couchcryptid/wildfire-insights/internal/observability"
)

const (
	// TopCauseCount is the N of the top-N cause time series.
	TopCauseCount = 5
	// HistogramBins is the fixed bin count of the log-scale size histogram.
	HistogramBins = 20
	// DefaultDebounceWindow coalesces year-range slider input.
	DefaultDebounceWindow = 300 * time.Millisecond
)

// Filter change dimensions accepted by Apply.
const (
	DimLocation  = "location"
	DimRegion    = "region"
	DimCause     = "cause"
	DimSizeClass = "size_class"
	DimYearRange = "year_range"
	DimReset     = "reset"
)

// ErrUnknownToken signals a filter value outside its declared domain: an
// integration bug, surfaced immediately rather than silently matching
// nothing.
var ErrUnknownToken = errors.New("unknown filter token")

// FilterChange is one discrete "filter changed" command dispatched into the
// engine. It decouples the engine from whatever event-binding mechanism
// (HTTP handler, CLI, test) produced the change.
type FilterChange struct {
	Dimension string `json:"dimension"`
	Value     string `json:"value,omitempty"`
	YearMin   int    `json:"year_min,omitempty"`
	YearMax   int    `json:"year_max,omitempty"`
}

// Snapshot is one full recompute: the active subset count plus every view's
// aggregation output and the headline insights. Nil members are explicit
// "no data" markers. The rendering layer consumes this structure as-is.
type Snapshot struct {
	Count      int       `json:"count"`
	ComputedAt time.Time `json:"computed_at"`

	TempBySize  []SizeClassMeans  `json:"temp_by_size"`
	Moisture    *DualWindowMeans  `json:"moisture,omitempty"`
	Matrix      FrequencyMatrix   `json:"matrix"`
	TopCauses   TopCauseSeries    `json:"top_causes"`
	CauseShares []CauseShare      `json:"cause_shares"`
	Histogram   *SizeHistogram    `json:"histogram,omitempty"`
	Locations   []LocationSummary `json:"locations"`
	Insights    *Insights         `json:"insights,omitempty"`
}

// Engine owns the two shared resources of the explorer: the immutable
// enriched incident set and the single FilterState. All mutation goes
// through the setter methods or Apply; every view reads the snapshot the
// engine computed, so no component can hold a second copy that drifts.
type Engine struct {
	incidents []domain.Incident
	mappings  domain.Mappings
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
	debounce  *Debouncer

	mu       sync.Mutex
	filter   FilterState
	snapshot *Snapshot
}

// Options configures optional Engine collaborators.
type Options struct {
	Clock          clockwork.Clock
	DebounceWindow time.Duration
}

// New builds an engine over a validated incident set and computes the
// initial all-default snapshot.
func New(incidents []domain.Incident, m domain.Mappings, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	window := opts.DebounceWindow
	if window == 0 {
		window = DefaultDebounceWindow
	}

	e := &Engine{
		incidents: incidents,
		mappings:  m,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
		filter:    NewFilterState(m.YearMin, m.YearMax),
	}
	e.debounce = NewDebouncer(clock, window)
	e.debounce.OnSuperseded(metrics.DebounceCoalesced.Inc)

	e.mu.Lock()
	e.recomputeLocked()
	e.mu.Unlock()
	return e
}

// Filter returns a copy of the current filter state. Read-only: callers
// cannot mutate engine state through it.
func (e *Engine) Filter() FilterState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

// Snapshot returns the most recent recompute result.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// CheckReadiness reports nil once the initial snapshot exists.
func (e *Engine) CheckReadiness(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.snapshot == nil {
		return errors.New("engine has not computed a snapshot yet")
	}
	return nil
}

// SetLocation selects a single state code (or "all") and recomputes
// immediately. Location codes are open vocabulary: an unmapped code filters
// to an empty subset, which is a valid selection, not an error.
func (e *Engine) SetLocation(code string) *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.SetLocation(code)
	e.metrics.FilterChanges.WithLabelValues(DimLocation).Inc()
	return e.recomputeLocked()
}

// SetRegion selects a macro-region (or "all") and recomputes immediately.
// Region names are a closed domain; an unrecognized token is rejected.
func (e *Engine) SetRegion(region string) (*Snapshot, error) {
	if region != FilterAll && !e.validRegion(region) {
		return nil, fmt.Errorf("%w: region %q", ErrUnknownToken, region)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.SetRegion(region)
	e.metrics.FilterChanges.WithLabelValues(DimRegion).Inc()
	return e.recomputeLocked(), nil
}

// SetCause selects a cause mode and recomputes immediately. Specific cause
// labels are open vocabulary, so any non-aggregate string is accepted.
func (e *Engine) SetCause(value string) *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.SetCause(value)
	e.metrics.FilterChanges.WithLabelValues(DimCause).Inc()
	return e.recomputeLocked()
}

// SetSizeClass selects a size class (or "all") and recomputes immediately.
// Size classes are a closed domain; an unrecognized letter is rejected.
func (e *Engine) SetSizeClass(value string) (*Snapshot, error) {
	if value != FilterAll && !domain.ValidSizeClass(value) {
		return nil, fmt.Errorf("%w: size class %q", ErrUnknownToken, value)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.SetSizeClass(value)
	e.metrics.FilterChanges.WithLabelValues(DimSizeClass).Inc()
	return e.recomputeLocked(), nil
}

// SetYearRange updates the year bounds (clamped and normalized) and
// schedules a debounced recompute. The slider fires continuously; only the
// latest state within the window is recomputed.
func (e *Engine) SetYearRange(yearMin, yearMax int) {
	e.mu.Lock()
	e.filter.SetYearRange(yearMin, yearMax, e.mappings.YearMin, e.mappings.YearMax)
	e.metrics.FilterChanges.WithLabelValues(DimYearRange).Inc()
	e.mu.Unlock()

	e.debounce.Trigger(func() {
		e.mu.Lock()
		e.recomputeLocked()
		e.mu.Unlock()
	})
}

// Reset restores the all-default filter state and recomputes immediately.
func (e *Engine) Reset() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.Reset(e.mappings.YearMin, e.mappings.YearMax)
	e.metrics.FilterChanges.WithLabelValues(DimReset).Inc()
	return e.recomputeLocked()
}

// Apply dispatches one filter change command to the matching setter. A
// year-range change returns the current (pre-debounce) snapshot; everything
// else returns the freshly recomputed one.
func (e *Engine) Apply(change FilterChange) (*Snapshot, error) {
	switch change.Dimension {
	case DimLocation:
		return e.SetLocation(change.Value), nil
	case DimRegion:
		return e.SetRegion(change.Value)
	case DimCause:
		return e.SetCause(change.Value), nil
	case DimSizeClass:
		return e.SetSizeClass(change.Value)
	case DimYearRange:
		e.SetYearRange(change.YearMin, change.YearMax)
		return e.Snapshot(), nil
	case DimReset:
		return e.Reset(), nil
	default:
		return nil, fmt.Errorf("%w: dimension %q", ErrUnknownToken, change.Dimension)
	}
}

func (e *Engine) validRegion(region string) bool {
	for _, r := range e.mappings.RegionNames() {
		if r == region {
			return true
		}
	}
	return false
}

// recomputeLocked runs the full pipeline: filtered view, all aggregations,
// insights. Caller holds e.mu.
func (e *Engine) recomputeLocked() *Snapshot {
	start := e.clock.Now()

	subset := Evaluate(e.incidents, e.filter, e.mappings.NaturalCause)
	snap := &Snapshot{
		Count:       len(subset),
		ComputedAt:  start,
		TempBySize:  WindowMeansBySize(subset, VarTemp),
		Moisture:    DualSeries(subset, VarHum, VarPrec),
		Matrix:      YearMonthMatrix(subset, e.mappings.YearMin, e.mappings.YearMax),
		TopCauses:   TopCausesByYear(subset, e.mappings.YearMin, e.mappings.YearMax, TopCauseCount),
		CauseShares: CauseDistribution(subset),
		Histogram:   AcreageHistogram(subset, HistogramBins),
		Locations:   LocationSummaries(subset),
		Insights:    ComputeInsights(subset),
	}

	elapsed := e.clock.Since(start)
	e.metrics.RecomputeDuration.Observe(elapsed.Seconds())
	e.metrics.ActiveSubsetSize.Set(float64(snap.Count))
	e.logger.Debug("recompute complete",
		"active", snap.Count,
		"total", len(e.incidents),
		"elapsed", elapsed,
	)

	e.snapshot = snap
	return snap
}
