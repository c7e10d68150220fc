package usecase

import (
	"time"

	"builders-panel/internal/formatter"
	"builders-panel/pkg/log"
)

const defaultMaxLatencySamples = 1000

// New creates a Parser that records outcomes into metrics.
func New(logger log.Logger, metrics formatter.MetricsCollector) formatter.Parser {
	if metrics == nil {
		metrics = NewMetricsCollector()
	}
	return &implParser{
		logger:  logger,
		metrics: metrics,
	}
}

// NewMetricsCollector creates an in-memory metrics collector.
func NewMetricsCollector() formatter.MetricsCollector {
	return &metricsCollectorImpl{
		degradedByType: make(map[string]int64),
		maxLatencySize: defaultMaxLatencySamples,
		latencies:      make([]time.Duration, 0, defaultMaxLatencySamples),
	}
}
