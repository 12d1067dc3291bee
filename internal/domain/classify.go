package domain

// Region maps a two-letter state code to its macro-region. Total: codes
// absent from the partition map to "Other".
func (m *Mappings) Region(state string) string {
	m.ensureIndexes()
	if r, ok := m.regionByState[state]; ok {
		return r
	}
	return "Other"
}

// Season maps a discovery month label to its season. Total: unrecognized
// months map to "Unknown".
func (m *Mappings) Season(month string) string {
	m.ensureIndexes()
	if s, ok := m.seasonByMonth[month]; ok {
		return s
	}
	return "Unknown"
}

// IsHumanCaused reports whether a cause label belongs to the configured
// human-attributable set. Membership is exact; the "Unknown" bucket is not
// human-caused.
func (m *Mappings) IsHumanCaused(cause string) bool {
	m.ensureIndexes()
	return m.humanCauseSet[cause]
}

// Classify fills the derived fields of an incident from its stored fields.
// It is pure and idempotent: reclassifying the same incident always yields
// the same Region, Season, and HumanCaused values. Applied exactly once per
// accepted row, at load time; filter changes never re-derive.
func (m *Mappings) Classify(inc Incident) Incident {
	inc.Region = m.Region(inc.State)
	inc.Season = m.Season(inc.Month)
	inc.HumanCaused = m.IsHumanCaused(inc.Cause)
	return inc
}
