package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/model"
	"github.com/BuzzLyutic/team-tracker/internal/repo"
)

type NotifyParams struct {
	PCName      string
	Action      string
	ProjectName string
	TaskID      *int64
	TaskName    *string
	Changes     map[string]model.FieldChange
}

// NotifyResult is what a notification write produced. Callers are free to
// drop it: a failed notification never fails the mutation that triggered it.
type NotifyResult struct {
	Notification model.Notification
	Err          error
}

func (r NotifyResult) OK() bool {
	return r.Err == nil
}

// Notifier is the write side of notifications as seen by other services.
type Notifier interface {
	Notify(ctx context.Context, p NotifyParams) NotifyResult
}

type NotificationService struct {
	repo   repo.NotificationRepository
	logger *zap.Logger
}

func NewNotificationService(repo repo.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Notify inserts one unread notification. Errors are logged and returned in
// the result, never as a separate return value.
func (s *NotificationService) Notify(ctx context.Context, p NotifyParams) NotifyResult {
	if err := validateNotify(p); err != nil {
		s.logger.Warn("notification rejected", zap.String("pc_name", p.PCName), zap.String("action", p.Action), zap.Error(err))
		return NotifyResult{Err: err}
	}

	n, err := s.repo.Insert(ctx, model.Notification{
		ID:          uuid.NewString(),
		PCName:      p.PCName,
		TaskID:      p.TaskID,
		ProjectName: p.ProjectName,
		TaskName:    p.TaskName,
		Action:      p.Action,
		Changes:     p.Changes,
	})
	if err != nil {
		s.logger.Warn("failed to write notification",
			zap.String("pc_name", p.PCName),
			zap.String("action", p.Action),
			zap.Error(err),
		)
		return NotifyResult{Err: err}
	}
	return NotifyResult{Notification: n}
}

func (s *NotificationService) List(ctx context.Context, pcName string, unreadOnly bool, limit int) ([]model.Notification, error) {
	if strings.TrimSpace(pcName) == "" {
		return nil, fmt.Errorf("%w: pc_name is required", ErrValidation)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, model.NotificationFilter{PCName: pcName, UnreadOnly: unreadOnly, Limit: limit})
}

// MarkRead marks one notification (id set) or every notification of pcName
// (id empty) as read and reports how many rows changed.
func (s *NotificationService) MarkRead(ctx context.Context, pcName, id string) (int64, error) {
	if strings.TrimSpace(pcName) == "" {
		return 0, fmt.Errorf("%w: pc_name is required", ErrValidation)
	}
	if id == "" {
		return s.repo.MarkAllRead(ctx, pcName)
	}
	if _, err := uuid.Parse(id); err != nil {
		return 0, fmt.Errorf("%w: invalid notification id", ErrValidation)
	}
	return s.repo.MarkRead(ctx, pcName, id)
}

func validateNotify(p NotifyParams) error {
	if strings.TrimSpace(p.PCName) == "" {
		return fmt.Errorf("%w: pc_name is required", ErrValidation)
	}
	if strings.TrimSpace(p.ProjectName) == "" {
		return fmt.Errorf("%w: project name is required", ErrValidation)
	}
	switch p.Action {
	case model.ActionCreated, model.ActionUpdated, model.ActionAssigned:
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrValidation, p.Action)
	}
}
