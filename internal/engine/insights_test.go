package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-insights/internal/domain"
)

func TestComputeInsights(t *testing.T) {
	subset := []domain.Incident{
		testIncident("CA", 2000, "Jun", "Arson", "B"),
		testIncident("CA", 2001, "Jun", "Lightning", "B"),
		testIncident("TX", 2002, "Jul", "Campfire", "B"),
		testIncident("CA", 2003, "Aug", "Lightning", "B"),
	}

	out := ComputeInsights(subset)
	require.NotNil(t, out)

	assert.InDelta(t, 0.5, out.HumanShare, 1e-12) // Arson + Campfire of 4
	assert.Equal(t, "Jun", out.PeakMonth)
	assert.Equal(t, 2, out.PeakMonthN)
	assert.Equal(t, "CA", out.PeakLocation)
	assert.Equal(t, 3, out.PeakLocationN)
}

func TestComputeInsights_TieBreakFirstEncountered(t *testing.T) {
	subset := []domain.Incident{
		testIncident("TX", 2000, "Oct", "Arson", "B"),
		testIncident("CA", 2001, "Jun", "Lightning", "B"),
	}

	out := ComputeInsights(subset)
	require.NotNil(t, out)
	assert.Equal(t, "Oct", out.PeakMonth)
	assert.Equal(t, "TX", out.PeakLocation)
}

func TestComputeInsights_EmptySubset(t *testing.T) {
	assert.Nil(t, ComputeInsights(nil))
	assert.Nil(t, ComputeInsights([]domain.Incident{}))
}
