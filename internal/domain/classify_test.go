package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegion(t *testing.T) {
	m := DefaultMappings()

	tests := []struct {
		state    string
		expected string
	}{
		{"CA", "West"},
		{"WA", "West"},
		{"TX", "South"},
		{"FL", "South"},
		{"MN", "Midwest"},
		{"OH", "Midwest"},
		{"NY", "Northeast"},
		{"ME", "Northeast"},
		{"GU", "Other"}, // not in any partition
		{"", "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Region(tt.state))
		})
	}
}

func TestSeason(t *testing.T) {
	m := DefaultMappings()

	tests := []struct {
		month    string
		expected string
	}{
		{"Dec", "Winter"},
		{"Jan", "Winter"},
		{"Mar", "Spring"},
		{"Jul", "Summer"},
		{"Oct", "Fall"},
		{"July", "Unknown"}, // full names are not the source convention
		{"", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Season(tt.month))
		})
	}
}

func TestIsHumanCaused(t *testing.T) {
	m := DefaultMappings()

	assert.True(t, m.IsHumanCaused("Arson"))
	assert.True(t, m.IsHumanCaused("Debris Burning"))
	assert.False(t, m.IsHumanCaused("Lightning"))
	assert.False(t, m.IsHumanCaused(UnknownCause))
	assert.False(t, m.IsHumanCaused("arson")) // membership is exact
}

func TestClassifyIdempotent(t *testing.T) {
	m := DefaultMappings()
	inc := Incident{State: "CA", Month: "Jul", Cause: "Campfire"}

	first := m.Classify(inc)
	second := m.Classify(first)

	assert.Equal(t, first.Region, second.Region)
	assert.Equal(t, first.Season, second.Season)
	assert.Equal(t, first.HumanCaused, second.HumanCaused)
	assert.Equal(t, "West", first.Region)
	assert.Equal(t, "Summer", first.Season)
	assert.True(t, first.HumanCaused)
}
