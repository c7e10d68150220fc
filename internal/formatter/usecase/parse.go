package usecase

import (
	"context"
	"strings"
	"time"

	"builders-panel/internal/formatter"
	"builders-panel/internal/model"
)

// Format renders a record. It is pure: the same record always yields the same content.
func Format(record model.Record) (model.DisplayContent, formatter.Outcome) {
	r, ok := rules[formatter.EventType(record.EventType)]
	if !ok {
		return fallback(record), formatter.OutcomeFallback
	}

	if r.extract == nil {
		return model.DisplayContent{
			Kind:    record.EventType,
			Icon:    r.icon,
			Label:   r.label,
			Lines:   splitLines(record.Payload),
			Matched: true,
		}, formatter.OutcomeLabelled
	}

	fields, ok := r.extract(record.Payload)
	if !ok {
		return fallback(record), formatter.OutcomeDegraded
	}

	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name] = f.Value
	}
	return model.DisplayContent{
		Kind:    record.EventType,
		Icon:    r.icon,
		Label:   r.label,
		Fields:  fields,
		Rows:    r.rows(values),
		Matched: true,
	}, formatter.OutcomeMatched
}

func fallback(record model.Record) model.DisplayContent {
	return model.DisplayContent{
		Kind:  record.EventType,
		Lines: splitLines(record.Payload),
	}
}

func splitLines(payload string) []string {
	return strings.Split(payload, "\n")
}

func (p *implParser) Parse(ctx context.Context, record model.Record) model.DisplayContent {
	start := time.Now()
	content, outcome := Format(record)
	p.metrics.RecordParseLatency(time.Since(start))
	p.metrics.IncrementOutcome(record.EventType, outcome)

	if outcome == formatter.OutcomeDegraded {
		p.logger.Debugf(ctx, "internal.formatter.usecase.Parse: %s payload did not match, rendered as plain text", record.EventType)
	}
	return content
}

func (p *implParser) ParseAll(ctx context.Context, records []model.Record) []model.DisplayContent {
	out := make([]model.DisplayContent, len(records))
	for i, r := range records {
		out[i] = p.Parse(ctx, r)
	}
	return out
}
