package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BuzzLyutic/team-tracker/internal/model"
	"github.com/BuzzLyutic/team-tracker/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

const defaultTaskStatus = "todo"

type TaskService struct {
	repo     repo.TaskRepository
	projects repo.ProjectRepository
	notifier Notifier
}

func NewTaskService(repo repo.TaskRepository, projects repo.ProjectRepository, notifier Notifier) *TaskService {
	return &TaskService{repo: repo, projects: projects, notifier: notifier}
}

func (s *TaskService) Create(ctx context.Context, t model.Task) (model.Task, error) {
	if err := s.validate(t); err != nil {
		return t, err
	}
	if t.Status == "" {
		t.Status = defaultTaskStatus
	}

	project, err := s.projects.Get(ctx, t.ProjectID)
	if err != nil {
		return t, err
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return created, err
	}

	if assignee := deref(created.Assignee); assignee != "" {
		s.notify(ctx, assignee, model.ActionCreated, project.Name, created, nil)
	}
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *TaskService) List(ctx context.Context, filter model.TaskFilter, limit int) ([]model.Task, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.List(ctx, filter, limit)
}

// Update applies patch to the stored task. The current assignee receives an
// "updated" notification with the change-set; a newly set assignee receives
// "assigned" instead.
func (s *TaskService) Update(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return current, err
	}

	next := current
	changes := map[string]model.FieldChange{}
	if patch.Name != nil && *patch.Name != current.Name {
		changes["name"] = model.FieldChange{Old: current.Name, New: *patch.Name}
		next.Name = *patch.Name
	}
	if patch.Status != nil && *patch.Status != current.Status {
		changes["status"] = model.FieldChange{Old: current.Status, New: *patch.Status}
		next.Status = *patch.Status
	}
	if patch.Assignee != nil && *patch.Assignee != deref(current.Assignee) {
		changes["assignee"] = model.FieldChange{Old: current.Assignee, New: nilIfEmpty(*patch.Assignee)}
		next.Assignee = nilIfEmpty(*patch.Assignee)
	}
	if len(changes) == 0 {
		return current, nil
	}
	if err := s.validate(next); err != nil {
		return current, err
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return updated, err
	}

	assignee := deref(updated.Assignee)
	if assignee == "" {
		return updated, nil
	}
	project, err := s.projects.Get(ctx, updated.ProjectID)
	if err != nil {
		// The mutation already happened; only the notification is lost.
		return updated, nil
	}
	action := model.ActionUpdated
	if _, reassigned := changes["assignee"]; reassigned {
		action = model.ActionAssigned
	}
	s.notify(ctx, assignee, action, project.Name, updated, changes)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) notify(ctx context.Context, pcName, action, projectName string, t model.Task, changes map[string]model.FieldChange) {
	if s.notifier == nil {
		return
	}
	id, name := t.ID, t.Name
	s.notifier.Notify(ctx, NotifyParams{
		PCName:      pcName,
		Action:      action,
		ProjectName: projectName,
		TaskID:      &id,
		TaskName:    &name,
		Changes:     changes,
	})
}

func (s *TaskService) validate(t model.Task) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if t.ProjectID <= 0 {
		return fmt.Errorf("%w: project_id is required", ErrValidation)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
