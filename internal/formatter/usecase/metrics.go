package usecase

import (
	"time"

	"builders-panel/internal/formatter"
)

// IncrementOutcome counts one parsed record.
func (m *metricsCollectorImpl) IncrementOutcome(eventType string, outcome formatter.Outcome) {
	switch outcome {
	case formatter.OutcomeMatched:
		m.matched.Add(1)
	case formatter.OutcomeLabelled:
		m.labelled.Add(1)
	case formatter.OutcomeFallback:
		m.fallback.Add(1)
	case formatter.OutcomeDegraded:
		m.degraded.Add(1)
		m.mu.Lock()
		m.degradedByType[eventType]++
		m.mu.Unlock()
	}
}

// RecordParseLatency keeps the last maxLatencySize samples.
func (m *metricsCollectorImpl) RecordParseLatency(duration time.Duration) {
	m.latencyMu.Lock()
	defer m.latencyMu.Unlock()

	if len(m.latencies) >= m.maxLatencySize {
		copy(m.latencies, m.latencies[1:])
		m.latencies = m.latencies[:len(m.latencies)-1]
	}
	m.latencies = append(m.latencies, duration)
}

func (m *metricsCollectorImpl) averageLatency() time.Duration {
	m.latencyMu.Lock()
	defer m.latencyMu.Unlock()

	if len(m.latencies) == 0 {
		return 0
	}
	var total time.Duration
	for _, lat := range m.latencies {
		total += lat
	}
	return total / time.Duration(len(m.latencies))
}

// GetMetrics returns a copy of the counters.
func (m *metricsCollectorImpl) GetMetrics() formatter.ParseMetrics {
	m.mu.RLock()
	byType := make(map[string]int64, len(m.degradedByType))
	for k, v := range m.degradedByType {
		byType[k] = v
	}
	m.mu.RUnlock()

	return formatter.ParseMetrics{
		Matched:        m.matched.Load(),
		Labelled:       m.labelled.Load(),
		Degraded:       m.degraded.Load(),
		Fallback:       m.fallback.Load(),
		DegradedByType: byType,
		AverageLatency: m.averageLatency(),
	}
}
