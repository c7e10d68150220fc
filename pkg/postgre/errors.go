package postgres

import "errors"

var ErrMissingTable = errors.New("notifications table does not exist")
