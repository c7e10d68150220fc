package model

import (
	"errors"
	"strings"
	"time"
)

// LocalDateTimeLayout is how the backend renders timestamps: no zone, optional fraction.
const LocalDateTimeLayout = "2006-01-02T15:04:05.999999999"

var timestampLayouts = []string{
	time.RFC3339Nano,
	LocalDateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

var ErrInvalidTimestamp = errors.New("invalid notification timestamp")

// Record is one notification as delivered by the backend. It is never mutated.
type Record struct {
	EventType string    `json:"eventType"`
	Payload   string    `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
	// RawTimestamp is the timestamp text exactly as received. Identity keys are built from it.
	RawTimestamp string `json:"-"`
}

// NewRecord builds a Record whose raw timestamp is rendered the way the backend does.
func NewRecord(eventType, payload string, ts time.Time) Record {
	return Record{
		EventType:    eventType,
		Payload:      payload,
		Timestamp:    ts,
		RawTimestamp: ts.Format(LocalDateTimeLayout),
	}
}

// Key is the pseudo identity of a record: event type followed by the raw timestamp.
// Two records sharing both are indistinguishable.
func (r Record) Key() string {
	raw := r.RawTimestamp
	if raw == "" && !r.Timestamp.IsZero() {
		raw = r.Timestamp.Format(LocalDateTimeLayout)
	}
	return r.EventType + raw
}

// Snapshot is every notification of a user as of one poll, oldest first.
type Snapshot []Record

// Len is len(s), spelled out for call sites that read better with it.
func (s Snapshot) Len() int { return len(s) }

// ParseTimestamp accepts RFC3339 and zone-less local date times. Zone-less values are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
