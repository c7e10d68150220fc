package relay

import (
	"encoding/json"
	"time"

	"builders-panel/internal/model"

	"github.com/google/uuid"
)

// Kind names a panel view event on the wire.
type Kind string

const (
	KindListUpdate      Kind = "LIST_UPDATE"
	KindNewNotification Kind = "NEW_NOTIFICATION"
	KindUnreadCount     Kind = "UNREAD_COUNT"
)

// NotificationView is a rendered notification as pushed to browsers and buses.
type NotificationView struct {
	EventType       string    `json:"event_type"`
	Timestamp       time.Time `json:"timestamp"`
	RawTimestamp    string    `json:"raw_timestamp,omitempty"`
	Kind            string    `json:"kind"`
	Icon            string    `json:"icon,omitempty"`
	Label           string    `json:"label,omitempty"`
	Text            string    `json:"text"`
	HTML            string    `json:"html"`
	Matched         bool      `json:"matched"`
	ToastDurationMs int64     `json:"toast_duration_ms,omitempty"`
}

// Event is the envelope of every relayed view event.
type Event struct {
	ID           string             `json:"id"`
	Kind         Kind               `json:"kind"`
	Source       string             `json:"source"`
	UserID       int64              `json:"user_id"`
	Timestamp    time.Time          `json:"timestamp"`
	Items        []NotificationView `json:"items,omitempty"`
	EmptyMessage string             `json:"empty_message,omitempty"`
	Notification *NotificationView  `json:"notification,omitempty"`
	Unread       int                `json:"unread"`
}

func NewNotificationView(n model.Notification) NotificationView {
	return NotificationView{
		EventType:       n.Record.EventType,
		Timestamp:       n.Record.Timestamp,
		RawTimestamp:    n.Record.RawTimestamp,
		Kind:            n.Content.Kind,
		Icon:            n.Content.Icon,
		Label:           n.Content.Label,
		Text:            n.Content.Text(),
		HTML:            n.Content.HTML(),
		Matched:         n.Content.Matched,
		ToastDurationMs: n.ToastDuration.Milliseconds(),
	}
}

// Builder stamps events with the user and the emitting instance.
type Builder struct {
	Source string
	UserID int64
	now    func() time.Time
}

// NewBuilder returns a Builder with a fresh instance id as Source.
func NewBuilder(userID int64) Builder {
	return Builder{
		Source: uuid.NewString(),
		UserID: userID,
		now:    time.Now,
	}
}

func (b Builder) event(kind Kind) Event {
	now := time.Now
	if b.now != nil {
		now = b.now
	}
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Source:    b.Source,
		UserID:    b.UserID,
		Timestamp: now().UTC(),
	}
}

func (b Builder) ListUpdate(u model.ListUpdate) Event {
	e := b.event(KindListUpdate)
	e.Items = make([]NotificationView, 0, len(u.Items))
	for _, n := range u.Items {
		e.Items = append(e.Items, NewNotificationView(n))
	}
	if len(u.Items) == 0 {
		e.EmptyMessage = model.EmptyListMessage
	}
	e.Unread = u.Unread
	return e
}

func (b Builder) NewNotification(n model.Notification) Event {
	e := b.event(KindNewNotification)
	v := NewNotificationView(n)
	e.Notification = &v
	return e
}

func (b Builder) UnreadCount(unread int) Event {
	e := b.event(KindUnreadCount)
	e.Unread = unread
	return e
}

func Encode(e Event) ([]byte, error) {
	return json.Marshal(e)
}

func Decode(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	if e.Kind == "" {
		return Event{}, ErrUnknownKind
	}
	return e, nil
}
