package formatter

// EventType is the backend's notification kind.
type EventType string

const (
	EventOrderCreated                EventType = "ORDER_CREATED"
	EventConstructionRequestCreated  EventType = "CONSTRUCTION_REQUEST_CREATED"
	EventConstructionRequestRejected EventType = "CONSTRUCTION_REQUEST_REJECTED"
	EventConstructionRequestApproved EventType = "CONSTRUCTION_REQUEST_APPROVED"
	EventConstructionRequestFailed   EventType = "CONSTRUCTION_REQUEST_FAILED"

	// Emitted by the backend but rendered through the generic fallback.
	EventRequestFailed       EventType = "REQUEST_FAILED"
	EventOrderCreationFailed EventType = "ORDER_CREATION_FAILED"
	EventTest                EventType = "TEST_EVENT"
)

// Outcome tells how a record was rendered.
type Outcome string

const (
	OutcomeMatched  Outcome = "matched"  // structured extraction succeeded
	OutcomeLabelled Outcome = "labelled" // verbatim payload under a kind label
	OutcomeDegraded Outcome = "degraded" // known kind, payload did not match its pattern
	OutcomeFallback Outcome = "fallback" // unrecognized event type
)

// IsFailure reports whether the event type describes a failed or rejected request.
func (e EventType) IsFailure() bool {
	switch e {
	case EventConstructionRequestRejected, EventConstructionRequestFailed,
		EventRequestFailed, EventOrderCreationFailed:
		return true
	default:
		return false
	}
}
