package repository

import (
	"context"

	"builders-panel/internal/model"
)

// Repository is the backend notification store as seen by the panel.
//
//go:generate mockery --name Repository
type Repository interface {
	// ListByUser returns every notification of the user, oldest first.
	ListByUser(ctx context.Context, userID int64) (model.Snapshot, error)
	// DeleteByUser drops every notification of the user upstream.
	DeleteByUser(ctx context.Context, userID int64) error
}
