package formatter

import "time"

// ParseMetrics is a point in time copy of the parser counters.
type ParseMetrics struct {
	Matched  int64 `json:"matched"`
	Labelled int64 `json:"labelled"`
	Degraded int64 `json:"degraded"`
	Fallback int64 `json:"fallback"`

	// DegradedByType counts pattern mismatches of known kinds.
	DegradedByType map[string]int64 `json:"degraded_by_type,omitempty"`

	AverageLatency time.Duration `json:"average_latency"`
}

// Total is the number of records parsed.
func (m ParseMetrics) Total() int64 {
	return m.Matched + m.Labelled + m.Degraded + m.Fallback
}
