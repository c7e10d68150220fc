package repository

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidUserID = errors.New("invalid user id")
	ErrUnavailable   = errors.New("notification source unavailable")
	ErrDecode        = errors.New("malformed notification snapshot")
)

// ValidateUserID checks that id can reference a backend user.
func ValidateUserID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidUserID, id)
	}
	return nil
}
