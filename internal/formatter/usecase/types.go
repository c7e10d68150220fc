package usecase

import (
	"sync"
	"sync/atomic"
	"time"

	"builders-panel/internal/formatter"
	"builders-panel/internal/model"
	"builders-panel/pkg/log"
)

// implParser implements formatter.Parser.
type implParser struct {
	logger  log.Logger
	metrics formatter.MetricsCollector
}

// metricsCollectorImpl implements formatter.MetricsCollector.
type metricsCollectorImpl struct {
	matched  atomic.Int64
	labelled atomic.Int64
	degraded atomic.Int64
	fallback atomic.Int64

	mu             sync.RWMutex
	degradedByType map[string]int64

	latencyMu      sync.Mutex
	latencies      []time.Duration
	maxLatencySize int
}

// extractor pulls named fields out of a payload. ok is false when the payload does not match.
type extractor func(payload string) (fields []model.Field, ok bool)

// rule describes how one event type is rendered.
type rule struct {
	icon    string
	label   string
	extract extractor
	rows    func(values map[string]string) []model.Row
}
