package postgres

const (
	listByUserQuery = `SELECT id, event_type, payload, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at ASC, id ASC`

	deleteByUserQuery = `DELETE FROM notifications WHERE user_id = $1`
)
