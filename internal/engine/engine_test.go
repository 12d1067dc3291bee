package engine

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-insights/internal/domain"
	"github.com/couchcryptid/wildfire-insights/internal/observability"
)

func newTestEngine(t *testing.T, incidents []domain.Incident, opts Options) (*Engine, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	e := New(incidents, domain.DefaultMappings(), slog.Default(), metrics, opts)
	return e, metrics
}

func TestEngine_InitialSnapshot(t *testing.T) {
	e, _ := newTestEngine(t, testSet(), Options{})

	snap := e.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 3, snap.Count)
	require.NotNil(t, snap.Insights)
	assert.NoError(t, e.CheckReadiness(context.Background()))
}

func TestEngine_CountMatchesSubsetLength(t *testing.T) {
	set := testSet()
	e, _ := newTestEngine(t, set, Options{})

	snap, err := e.SetRegion("West")
	require.NoError(t, err)

	manual := Evaluate(set, e.Filter(), domain.DefaultMappings().NaturalCause)
	assert.Equal(t, len(manual), snap.Count)
	assert.Equal(t, 1, snap.Count)
}

func TestEngine_LocationRegionExclusivity(t *testing.T) {
	e, _ := newTestEngine(t, testSet(), Options{})

	_, err := e.SetRegion("South")
	require.NoError(t, err)
	assert.Equal(t, "South", e.Filter().Region)

	e.SetLocation("CA")
	f := e.Filter()
	assert.Equal(t, "CA", f.Location)
	assert.Equal(t, FilterAll, f.Region)
}

func TestEngine_UnknownRegionRejected(t *testing.T) {
	e, _ := newTestEngine(t, testSet(), Options{})

	_, err := e.SetRegion("Atlantis")
	require.ErrorIs(t, err, ErrUnknownToken)

	// The failed call must not have touched the filter state.
	assert.Equal(t, FilterAll, e.Filter().Region)
}

func TestEngine_UnknownSizeClassRejected(t *testing.T) {
	e, _ := newTestEngine(t, testSet(), Options{})

	_, err := e.SetSizeClass("Z")
	require.ErrorIs(t, err, ErrUnknownToken)
	assert.Equal(t, FilterAll, e.Filter().SizeClass)
}

func TestEngine_SentinelRecordStaysInSubset(t *testing.T) {
	// All four temperature samples missing: excluded from the temperature
	// means but still present in the count and the cause distribution.
	noTemp := testIncident("CA", 2000, "Jun", "Lightning", "B")
	withTemp := testIncident("CA", 2001, "Jul", "Arson", "B")
	withTemp.Temp = fullWindow(70, 72, 74, 68)

	e, _ := newTestEngine(t, []domain.Incident{noTemp, withTemp}, Options{})

	snap := e.Snapshot()
	assert.Equal(t, 2, snap.Count)
	require.Len(t, snap.TempBySize, 1)
	assert.Equal(t, 1, snap.TempBySize[0].Count)
	assert.Len(t, snap.CauseShares, 2)
}

func TestEngine_EmptySubsetMarkers(t *testing.T) {
	e, _ := newTestEngine(t, testSet(), Options{})

	snap := e.SetLocation("ZZ")
	assert.Equal(t, 0, snap.Count)
	assert.Nil(t, snap.Insights)
	assert.Nil(t, snap.Histogram)
	assert.Nil(t, snap.Moisture)
	assert.Empty(t, snap.CauseShares)

	// Matrix axes still span the full declared range.
	m := domain.DefaultMappings()
	assert.Len(t, snap.Matrix.Counts, m.YearMax-m.YearMin+1)
}

func TestEngine_YearRangeDebounced(t *testing.T) {
	clock := clockwork.NewFakeClock()
	e, metrics := newTestEngine(t, testSet(), Options{
		Clock:          clock,
		DebounceWindow: 300 * time.Millisecond,
	})

	// Rapid slider movement: three updates inside the window.
	e.SetYearRange(1995, 2012)
	e.SetYearRange(1998, 2008)
	e.SetYearRange(2001, 2009)

	// Filter state reflects the latest input immediately.
	f := e.Filter()
	assert.Equal(t, 2001, f.YearMin)
	assert.Equal(t, 2009, f.YearMax)

	// But the snapshot is still the initial one until the window elapses.
	assert.Equal(t, 3, e.Snapshot().Count)

	clock.Advance(300 * time.Millisecond)
	assert.Eventually(t, func() bool { return e.Snapshot().Count == 1 },
		time.Second, 5*time.Millisecond)

	// Two of the three pending recomputes were discarded, not queued.
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.DebounceCoalesced))
}

func TestEngine_Apply(t *testing.T) {
	e, _ := newTestEngine(t, testSet(), Options{})

	t.Run("dispatches to setters", func(t *testing.T) {
		snap, err := e.Apply(FilterChange{Dimension: DimCause, Value: CauseHumanAggregate})
		require.NoError(t, err)
		assert.Equal(t, 2, snap.Count)

		snap, err = e.Apply(FilterChange{Dimension: DimReset})
		require.NoError(t, err)
		assert.Equal(t, 3, snap.Count)
	})

	t.Run("unknown dimension rejected", func(t *testing.T) {
		_, err := e.Apply(FilterChange{Dimension: "severity"})
		require.ErrorIs(t, err, ErrUnknownToken)
	})

	t.Run("unknown region token surfaces", func(t *testing.T) {
		_, err := e.Apply(FilterChange{Dimension: DimRegion, Value: "Atlantis"})
		require.ErrorIs(t, err, ErrUnknownToken)
	})
}

func TestEngine_Reset(t *testing.T) {
	e, _ := newTestEngine(t, testSet(), Options{})

	e.SetLocation("CA")
	e.SetCause("Arson")
	snap := e.Reset()

	assert.Equal(t, 3, snap.Count)
	m := domain.DefaultMappings()
	assert.Equal(t, NewFilterState(m.YearMin, m.YearMax), e.Filter())
}
