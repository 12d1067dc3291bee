package domain

// MissingSentinel is the value the upstream CSV join writes for weather
// measurements that were never observed.
const MissingSentinel = -1.0

// SizeClasses lists the valid fire size classes, smallest to largest.
var SizeClasses = []string{"A", "B", "C", "D", "E", "F", "G"}

// Months lists the discovery month labels used by the source CSV, in
// calendar order. Index in this slice is the canonical month index.
var Months = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// UnknownCause is the bucket for rows whose cause column is empty.
const UnknownCause = "Unknown"

// RawWindowValues holds one weather variable's four samples as unparsed CSV
// cell values: 30, 15, and 7 days pre-discovery, and at containment.
type RawWindowValues struct {
	Pre30 string
	Pre15 string
	Pre7  string
	Cont  string
}

// RawIncidentRow represents one CSV row before validation. All fields are
// strings exactly as read; parsing happens once, in BuildIncidents.
type RawIncidentRow struct {
	State     string
	FireYear  string
	DiscMonth string
	Cause     string
	SizeClass string
	SizeAcres string
	Temp      RawWindowValues
	Wind      RawWindowValues
	Hum       RawWindowValues
	Prec      RawWindowValues
}

// WindowValues holds one weather variable's four samples after validation.
// A nil entry means the measurement is absent (the source wrote the -1
// sentinel, or the cell did not parse).
type WindowValues struct {
	Pre30 *float64 `json:"pre30"`
	Pre15 *float64 `json:"pre15"`
	Pre7  *float64 `json:"pre7"`
	Cont  *float64 `json:"cont"`
}

// Complete reports whether all four samples are present.
func (w WindowValues) Complete() bool {
	return w.Pre30 != nil && w.Pre15 != nil && w.Pre7 != nil && w.Cont != nil
}

// Values returns the four samples in window order (pre-30, pre-15, pre-7,
// containment).
func (w WindowValues) Values() [4]*float64 {
	return [4]*float64{w.Pre30, w.Pre15, w.Pre7, w.Cont}
}

// Incident is one validated, enriched wildfire record. The slice produced by
// BuildIncidents is immutable for the life of the process; every filtered
// view and aggregation reads from it without copying or mutating.
type Incident struct {
	State     string   `json:"state"`
	Year      int      `json:"year"`
	Month     string   `json:"month"`
	Cause     string   `json:"cause"`
	SizeClass string   `json:"size_class"`
	SizeAcres *float64 `json:"size_acres,omitempty"`

	Temp WindowValues `json:"temp"`
	Wind WindowValues `json:"wind"`
	Hum  WindowValues `json:"hum"`
	Prec WindowValues `json:"prec"`

	// Derived at load time by Classify; pure functions of State, Month,
	// and Cause respectively.
	Region      string `json:"region"`
	Season      string `json:"season"`
	HumanCaused bool   `json:"human_caused"`
}

// MonthIndex returns the canonical 0-based index of a month label, or -1 if
// the label is not one of the twelve known months.
func MonthIndex(month string) int {
	for i, m := range Months {
		if m == month {
			return i
		}
	}
	return -1
}

// ValidSizeClass reports whether s is one of the seven size class letters.
func ValidSizeClass(s string) bool {
	for _, c := range SizeClasses {
		if c == s {
			return true
		}
	}
	return false
}
