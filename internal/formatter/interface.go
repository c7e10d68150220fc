package formatter

import (
	"context"
	"time"

	"builders-panel/internal/model"
)

// Parser turns records into display content. Parse never fails.
type Parser interface {
	Parse(ctx context.Context, record model.Record) model.DisplayContent
	ParseAll(ctx context.Context, records []model.Record) []model.DisplayContent
}

// MetricsCollector counts parse outcomes per event type.
type MetricsCollector interface {
	IncrementOutcome(eventType string, outcome Outcome)
	RecordParseLatency(duration time.Duration)
	GetMetrics() ParseMetrics
}
