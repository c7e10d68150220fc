package postgres

import (
	"fmt"
	"time"

	"builders-panel/internal/model"

	"github.com/aarondl/null/v8"
)

type notificationRow struct {
	ID        int64       `boil:"id"`
	EventType string      `boil:"event_type"`
	Payload   null.String `boil:"payload"`
	CreatedAt createdAt   `boil:"created_at"`
}

// createdAt scans native timestamps and the text form SQLite stores them in.
type createdAt struct {
	time.Time
}

func (c *createdAt) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		c.Time = v
		return nil
	case string:
		return c.parse(v)
	case []byte:
		return c.parse(string(v))
	default:
		return fmt.Errorf("created_at: cannot scan %T", value)
	}
}

func (c *createdAt) parse(s string) error {
	t, err := model.ParseTimestamp(s, time.UTC)
	if err != nil {
		return fmt.Errorf("created_at: %q: %w", s, err)
	}
	c.Time = t
	return nil
}
