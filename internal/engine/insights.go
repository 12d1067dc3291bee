package engine

import (
	"github.com/couchcryptid/wildfire-insights/internal/domain"
)

// Insights are the headline statistics over the active subset.
type Insights struct {
	HumanShare    float64 `json:"human_share"`
	PeakMonth     string  `json:"peak_month"`
	PeakMonthN    int     `json:"peak_month_count"`
	PeakLocation  string  `json:"peak_location"`
	PeakLocationN int     `json:"peak_location_count"`
}

// ComputeInsights derives the human-caused share, the busiest month, and the
// busiest state from the subset in a single pass. Returns nil on an empty
// subset: "insufficient data" is an explicit marker, never a division by
// zero. Count ties break by first-encountered order.
func ComputeInsights(subset []domain.Incident) *Insights {
	if len(subset) == 0 {
		return nil
	}

	var human int
	monthCounts := make(map[string]int)
	stateCounts := make(map[string]int)
	var monthOrder, stateOrder []string

	for i := range subset {
		inc := &subset[i]
		if inc.HumanCaused {
			human++
		}
		if _, seen := monthCounts[inc.Month]; !seen {
			monthOrder = append(monthOrder, inc.Month)
		}
		monthCounts[inc.Month]++
		if _, seen := stateCounts[inc.State]; !seen {
			stateOrder = append(stateOrder, inc.State)
		}
		stateCounts[inc.State]++
	}

	out := &Insights{HumanShare: float64(human) / float64(len(subset))}
	for _, m := range monthOrder {
		if monthCounts[m] > out.PeakMonthN {
			out.PeakMonth = m
			out.PeakMonthN = monthCounts[m]
		}
	}
	for _, s := range stateOrder {
		if stateCounts[s] > out.PeakLocationN {
			out.PeakLocation = s
			out.PeakLocationN = stateCounts[s]
		}
	}
	return out
}
