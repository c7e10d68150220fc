package notification

import (
	"context"
	"fmt"

	"builders-panel/config"
	configPostgre "builders-panel/config/postgre"
	configSQLite "builders-panel/config/sqlite"
	"builders-panel/internal/notification/repository"
	notificationHTTP "builders-panel/internal/notification/repository/http"
	notificationPostgres "builders-panel/internal/notification/repository/postgre"
	"builders-panel/pkg/log"
)

// PingFunc reports whether the backing store is reachable.
type PingFunc func(ctx context.Context) error

// NewRepository opens the source selected by cfg.Panel.Source. The ping is nil for
// the REST source, whose availability shows up in the poll results instead.
func NewRepository(ctx context.Context, l log.Logger, cfg *config.Config) (repository.Repository, PingFunc, error) {
	loc, err := cfg.Panel.Location()
	if err != nil {
		return nil, nil, err
	}

	source := Source(cfg.Panel.Source)
	if !source.IsValid() {
		return nil, nil, fmt.Errorf("unknown notification source %q", cfg.Panel.Source)
	}

	switch source {
	case SourceSQLite:
		db, err := configSQLite.Connect(ctx, l, cfg.SQLite)
		if err != nil {
			return nil, nil, err
		}
		return notificationPostgres.New(l, db, loc), configSQLite.HealthCheck, nil
	case SourcePostgres:
		db, err := configPostgre.Connect(ctx, l, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return notificationPostgres.New(l, db, loc), configPostgre.HealthCheck, nil
	default:
		return notificationHTTP.New(l, notificationHTTP.Options{
			BaseURL:  cfg.Panel.BaseURL,
			Timeout:  cfg.Panel.RequestTimeout,
			Location: loc,
		}), nil, nil
	}
}

// CloseRepository releases whatever NewRepository opened.
func CloseRepository(ctx context.Context) {
	_ = configPostgre.Disconnect(ctx)
	_ = configSQLite.Disconnect()
}
