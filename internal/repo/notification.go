package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/team-tracker/internal/model"
)

const notificationColumns = `id, pc_name, task_id, project_name, task_name, action, changes, is_read, created_at`

type NotificationRepo struct {
	pool     *pgxpool.Pool
	readPool *pgxpool.Pool
}

func NewNotificationRepo(pool, readPool *pgxpool.Pool) *NotificationRepo {
	if readPool == nil {
		readPool = pool
	}
	return &NotificationRepo{pool: pool, readPool: readPool}
}

func scanNotification(row pgx.Row, extra ...any) (model.Notification, error) {
	var n model.Notification
	dest := []any{&n.ID, &n.PCName, &n.TaskID, &n.ProjectName, &n.TaskName, &n.Action, &n.Changes, &n.IsRead, &n.CreatedAt}
	err := row.Scan(append(dest, extra...)...)
	return n, err
}

func (r *NotificationRepo) Insert(ctx context.Context, n model.Notification) (model.Notification, error) {
	var changes any
	if len(n.Changes) > 0 {
		changes = n.Changes
	}

	created, err := scanNotification(r.pool.QueryRow(ctx, `
		INSERT INTO notifications (id, pc_name, task_id, project_name, task_name, action, changes, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)
		RETURNING `+notificationColumns,
		n.ID, n.PCName, n.TaskID, n.ProjectName, n.TaskName, n.Action, changes))
	return created, mapError(err)
}

func (r *NotificationRepo) List(ctx context.Context, filter model.NotificationFilter) ([]model.Notification, error) {
	rows, err := r.readPool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE pc_name = $1 AND (NOT $2 OR is_read = false)
		ORDER BY created_at DESC
		LIMIT $3
	`, filter.PCName, filter.UnreadOnly, filter.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips a single notification, scoped by its owner.
func (r *NotificationRepo) MarkRead(ctx context.Context, pcName, id string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true
		WHERE id = $1 AND pc_name = $2
	`, id, pcName)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, pcName string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true
		WHERE pc_name = $1 AND is_read = false
	`, pcName)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
