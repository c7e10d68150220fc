package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgreSQL error codes inspected by repositories.
const (
	codeUndefinedTable = "42P01"
)

// IsUndefinedTable reports whether err is a pq error for a missing relation.
func IsUndefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == codeUndefinedTable
	}
	return false
}

// TranslateError maps driver errors onto package errors, leaving others untouched.
func TranslateError(err error) error {
	if IsUndefinedTable(err) {
		return fmt.Errorf("%w: %v", ErrMissingTable, err)
	}
	return err
}
