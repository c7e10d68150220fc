package errors

// Error codes carried in response envelopes next to the HTTP status.
const (
	CodeBadRequest         = 400
	CodeNotFound           = 404
	CodeConflict           = 409
	CodeTooManyRequests    = 429
	CodeSourceUnavailable  = 503
	CodeUpstreamBadPayload = 502
)
