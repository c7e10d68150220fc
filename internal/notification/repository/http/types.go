package http

import "encoding/json"

// notificationDTO mirrors the backend payload. Payload is an arbitrary JSON value,
// usually a string, sometimes null. Timestamp is either an ISO string or a
// [y, m, d, h, min, s, nanos] array depending on the backend's date settings.
type notificationDTO struct {
	EventType string          `json:"eventType"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp json.RawMessage `json:"timestamp"`
	UserID    *int64          `json:"userId,omitempty"`
}
