package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/team-tracker/internal/model"
)

// DeliveryRepo tracks assignment emails in notification_deliveries so that
// notification rows themselves are never touched.
type DeliveryRepo struct {
	pool *pgxpool.Pool
}

func NewDeliveryRepo(pool *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{pool: pool}
}

// ClaimNext locks the oldest undelivered assignment that has a recipient
// address and records it as sending. Returns ErrorNotFound when there is none
// or another worker claimed it first.
func (r *DeliveryRepo) ClaimNext(ctx context.Context) (model.Delivery, error) {
	var d model.Delivery

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return d, err
	}
	defer tx.Rollback(ctx)

	d.Notification, err = scanNotification(tx.QueryRow(ctx, `
		SELECT n.id, n.pc_name, n.task_id, n.project_name, n.task_name, n.action,
		       n.changes, n.is_read, n.created_at, m.email, m.name
		FROM notifications n
		JOIN LATERAL (
			SELECT tm.email, tm.name
			FROM team_members tm
			WHERE tm.pc_name = n.pc_name AND tm.email IS NOT NULL
			ORDER BY tm.id
			LIMIT 1
		) m ON true
		LEFT JOIN notification_deliveries d ON d.notification_id = n.id
		WHERE n.action = 'assigned' AND d.notification_id IS NULL
		ORDER BY n.created_at
		LIMIT 1
		FOR UPDATE OF n SKIP LOCKED
	`), &d.Email, &d.MemberName)
	if err != nil {
		return d, mapError(err)
	}

	// A worker whose snapshot predates a concurrent claim can still lock the
	// row after the other commit; the primary key then tells it to back off.
	cmd, err := tx.Exec(ctx, `
		INSERT INTO notification_deliveries (notification_id, status)
		VALUES ($1, $2)
		ON CONFLICT (notification_id) DO NOTHING
	`, d.Notification.ID, model.DeliverySending)
	if err != nil {
		return d, mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return model.Delivery{}, ErrorNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return d, fmt.Errorf("commit claim: %w", err)
	}
	return d, nil
}

func (r *DeliveryRepo) MarkSent(ctx context.Context, notificationID string) error {
	return r.setStatus(ctx, notificationID, model.DeliverySent, nil)
}

func (r *DeliveryRepo) MarkFailed(ctx context.Context, notificationID string, reason string) error {
	return r.setStatus(ctx, notificationID, model.DeliveryFailed, &reason)
}

func (r *DeliveryRepo) setStatus(ctx context.Context, notificationID, status string, reason *string) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE notification_deliveries
		SET status = $2, last_error = $3, updated_at = now()
		WHERE notification_id = $1
	`, notificationID, status, reason)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}
