package response

import (
	"encoding/json"
	"time"

	"builders-panel/pkg/errors"
)

// Resp is the JSON envelope of every API response.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// ErrorMapping maps domain errors onto responses.
type ErrorMapping map[error]*errors.HTTPError

// DateTime renders in local time without zone.
type DateTime time.Time

func (d DateTime) MarshalJSON() ([]byte, error) {
	if time.Time(d).IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(time.Time(d).Local().Format(DateTimeFormat))
}
