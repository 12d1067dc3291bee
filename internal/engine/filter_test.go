package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-insights/internal/domain"
)

func testIncident(state string, year int, month, cause, sizeClass string) domain.Incident {
	m := domain.DefaultMappings()
	return m.Classify(domain.Incident{
		State:     state,
		Year:      year,
		Month:     month,
		Cause:     cause,
		SizeClass: sizeClass,
	})
}

func testSet() []domain.Incident {
	return []domain.Incident{
		testIncident("CA", 2000, "Jun", "Lightning", "B"),
		testIncident("TX", 2005, "Mar", "Arson", "G"),
		testIncident("NY", 2010, "Oct", "Campfire", "A"),
	}
}

func TestFilterState_LocationRegionExclusive(t *testing.T) {
	f := NewFilterState(1992, 2015)

	f.SetRegion("West")
	assert.Equal(t, "West", f.Region)
	assert.Equal(t, FilterAll, f.Location)

	f.SetLocation("CA")
	assert.Equal(t, "CA", f.Location)
	assert.Equal(t, FilterAll, f.Region)

	f.SetRegion("South")
	assert.Equal(t, "South", f.Region)
	assert.Equal(t, FilterAll, f.Location)

	// Releasing to "all" does not disturb the other dimension.
	f.SetLocation(FilterAll)
	assert.Equal(t, "South", f.Region)
}

func TestFilterState_SetYearRange(t *testing.T) {
	tests := []struct {
		name             string
		min, max         int
		wantMin, wantMax int
	}{
		{"in bounds", 2000, 2010, 2000, 2010},
		{"inverted pair swapped", 2010, 2000, 2000, 2010},
		{"clamped to bounds", 1800, 2100, 1992, 2015},
		{"single year", 2004, 2004, 2004, 2004},
		{"inverted and out of bounds", 2100, 1800, 1992, 2015},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilterState(1992, 2015)
			f.SetYearRange(tt.min, tt.max, 1992, 2015)
			assert.Equal(t, tt.wantMin, f.YearMin)
			assert.Equal(t, tt.wantMax, f.YearMax)
			assert.LessOrEqual(t, f.YearMin, f.YearMax)
		})
	}
}

func TestFilterState_Reset(t *testing.T) {
	f := NewFilterState(1992, 2015)
	f.SetLocation("CA")
	f.SetCause(CauseHumanAggregate)
	f.SetSizeClass("G")
	f.SetYearRange(2000, 2005, 1992, 2015)

	f.Reset(1992, 2015)
	assert.Equal(t, NewFilterState(1992, 2015), f)
}

func TestEvaluate(t *testing.T) {
	set := testSet()
	natural := "Lightning"

	t.Run("default filter matches everything in order", func(t *testing.T) {
		f := NewFilterState(1992, 2015)
		subset := Evaluate(set, f, natural)
		require.Len(t, subset, 3)
		assert.Equal(t, "CA", subset[0].State)
		assert.Equal(t, "TX", subset[1].State)
		assert.Equal(t, "NY", subset[2].State)
	})

	t.Run("region West selects only the CA record", func(t *testing.T) {
		f := NewFilterState(1992, 2015)
		f.SetRegion("West")
		subset := Evaluate(set, f, natural)
		require.Len(t, subset, 1)
		assert.Equal(t, "CA", subset[0].State)
	})

	t.Run("location filter", func(t *testing.T) {
		f := NewFilterState(1992, 2015)
		f.SetLocation("TX")
		subset := Evaluate(set, f, natural)
		require.Len(t, subset, 1)
		assert.Equal(t, "Arson", subset[0].Cause)
	})

	t.Run("year range inclusive at both ends", func(t *testing.T) {
		f := NewFilterState(1992, 2015)
		f.SetYearRange(2000, 2010, 1992, 2015)
		subset := Evaluate(set, f, natural)
		require.Len(t, subset, 3) // 2000 and 2010 records both included

		f.SetYearRange(2001, 2009, 1992, 2015)
		subset = Evaluate(set, f, natural)
		require.Len(t, subset, 1)
		assert.Equal(t, 2005, subset[0].Year)
	})

	t.Run("human aggregate", func(t *testing.T) {
		f := NewFilterState(1992, 2015)
		f.SetCause(CauseHumanAggregate)
		subset := Evaluate(set, f, natural)
		require.Len(t, subset, 2)
		assert.Equal(t, "TX", subset[0].State)
		assert.Equal(t, "NY", subset[1].State)
	})

	t.Run("natural aggregate", func(t *testing.T) {
		f := NewFilterState(1992, 2015)
		f.SetCause(CauseNaturalAggregate)
		subset := Evaluate(set, f, natural)
		require.Len(t, subset, 1)
		assert.Equal(t, "CA", subset[0].State)
	})

	t.Run("specific cause label", func(t *testing.T) {
		f := NewFilterState(1992, 2015)
		f.SetCause("Campfire")
		subset := Evaluate(set, f, natural)
		require.Len(t, subset, 1)
		assert.Equal(t, "NY", subset[0].State)
	})

	t.Run("size class filter", func(t *testing.T) {
		f := NewFilterState(1992, 2015)
		f.SetSizeClass("G")
		subset := Evaluate(set, f, natural)
		require.Len(t, subset, 1)
		assert.Equal(t, "TX", subset[0].State)
	})

	t.Run("clauses AND together", func(t *testing.T) {
		f := NewFilterState(1992, 2015)
		f.SetRegion("South")
		f.SetCause(CauseHumanAggregate)
		f.SetSizeClass("A")
		subset := Evaluate(set, f, natural)
		assert.Empty(t, subset)
	})

	t.Run("empty result is a valid selection", func(t *testing.T) {
		f := NewFilterState(1992, 2015)
		f.SetLocation("ZZ")
		subset := Evaluate(set, f, natural)
		assert.Empty(t, subset)
	})
}
