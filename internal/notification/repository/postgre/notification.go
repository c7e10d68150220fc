package postgres

import (
	"context"
	"fmt"

	"builders-panel/internal/model"
	"builders-panel/internal/notification/repository"
	postgresPkg "builders-panel/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

func (r *implRepository) ListByUser(ctx context.Context, userID int64) (model.Snapshot, error) {
	if err := repository.ValidateUserID(userID); err != nil {
		return nil, err
	}

	var rows []notificationRow
	if err := queries.Raw(listByUserQuery, userID).Bind(ctx, r.db, &rows); err != nil {
		err = postgresPkg.TranslateError(err)
		r.l.Errorf(ctx, "internal.notification.repository.postgre.ListByUser.Bind: %v", err)
		return nil, errors.Wrap(fmt.Errorf("%w: %v", repository.ErrUnavailable, err), "postgre: unable to list notifications")
	}

	snapshot := make(model.Snapshot, 0, len(rows))
	for _, row := range rows {
		snapshot = append(snapshot, r.toRecord(row))
	}
	return snapshot, nil
}

func (r *implRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if err := repository.ValidateUserID(userID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, deleteByUserQuery, userID)
	if err != nil {
		err = postgresPkg.TranslateError(err)
		r.l.Errorf(ctx, "internal.notification.repository.postgre.DeleteByUser.ExecContext: %v", err)
		return errors.Wrap(fmt.Errorf("%w: %v", repository.ErrUnavailable, err), "postgre: unable to delete notifications")
	}

	if n, err := res.RowsAffected(); err == nil {
		r.l.Infof(ctx, "internal.notification.repository.postgre.DeleteByUser: removed %d notifications of user %d", n, userID)
	}
	return nil
}

// toRecord renders created_at the way the REST backend would, so identity keys
// stay stable when switching sources.
func (r *implRepository) toRecord(row notificationRow) model.Record {
	return model.NewRecord(row.EventType, row.Payload.String, row.CreatedAt.In(r.loc))
}
