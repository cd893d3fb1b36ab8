package repo

import (
	"context"

	"github.com/BuzzLyutic/team-tracker/internal/model"
)

// TaskRepository persists tasks.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	List(ctx context.Context, filter model.TaskFilter, limit int) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id int64) error
}

type ProjectRepository interface {
	Create(ctx context.Context, p model.Project) (model.Project, error)
	Get(ctx context.Context, id int64) (model.Project, error)
	ListByStatus(ctx context.Context, status string) ([]model.Project, error)
	UpdateStatus(ctx context.Context, id int64, status string) (model.Project, error)
}

type TeamMemberRepository interface {
	Create(ctx context.Context, m model.TeamMember) (model.TeamMember, error)
	ListByTeam(ctx context.Context, teamID int64) ([]model.TeamMember, error)
	UpdateDisplayOrder(ctx context.Context, id int64, order int) error
}

// NotificationRepository never exposes a way to unset is_read or delete rows.
type NotificationRepository interface {
	Insert(ctx context.Context, n model.Notification) (model.Notification, error)
	List(ctx context.Context, filter model.NotificationFilter) ([]model.Notification, error)
	MarkRead(ctx context.Context, pcName, id string) (int64, error)
	MarkAllRead(ctx context.Context, pcName string) (int64, error)
}

type DeliveryRepository interface {
	ClaimNext(ctx context.Context) (model.Delivery, error)
	MarkSent(ctx context.Context, notificationID string) error
	MarkFailed(ctx context.Context, notificationID string, reason string) error
}
