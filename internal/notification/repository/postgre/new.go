package postgres

import (
	"database/sql"
	"time"

	"builders-panel/internal/notification/repository"
	"builders-panel/pkg/log"
)

type implRepository struct {
	l   log.Logger
	db  *sql.DB
	loc *time.Location
}

var _ repository.Repository = &implRepository{}

func New(l log.Logger, db *sql.DB, loc *time.Location) *implRepository {
	if loc == nil {
		loc = time.Local
	}
	return &implRepository{
		l:   l,
		db:  db,
		loc: loc,
	}
}
