// Package mocks holds testify mocks for the repo interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/team-tracker/internal/model"
)

type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) Get(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) List(ctx context.Context, filter model.TaskFilter, limit int) ([]model.Task, error) {
	args := m.Called(ctx, filter, limit)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, p model.Project) (model.Project, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *ProjectRepository) Get(ctx context.Context, id int64) (model.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *ProjectRepository) ListByStatus(ctx context.Context, status string) ([]model.Project, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *ProjectRepository) UpdateStatus(ctx context.Context, id int64, status string) (model.Project, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(model.Project), args.Error(1)
}

type TeamMemberRepository struct {
	mock.Mock
}

func (m *TeamMemberRepository) Create(ctx context.Context, tm model.TeamMember) (model.TeamMember, error) {
	args := m.Called(ctx, tm)
	return args.Get(0).(model.TeamMember), args.Error(1)
}

func (m *TeamMemberRepository) ListByTeam(ctx context.Context, teamID int64) ([]model.TeamMember, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]model.TeamMember), args.Error(1)
}

func (m *TeamMemberRepository) UpdateDisplayOrder(ctx context.Context, id int64, order int) error {
	args := m.Called(ctx, id, order)
	return args.Error(0)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Insert(ctx context.Context, n model.Notification) (model.Notification, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(model.Notification), args.Error(1)
}

func (m *NotificationRepository) List(ctx context.Context, filter model.NotificationFilter) ([]model.Notification, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, pcName, id string) (int64, error) {
	args := m.Called(ctx, pcName, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, pcName string) (int64, error) {
	args := m.Called(ctx, pcName)
	return args.Get(0).(int64), args.Error(1)
}

type DeliveryRepository struct {
	mock.Mock
}

func (m *DeliveryRepository) ClaimNext(ctx context.Context) (model.Delivery, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Delivery), args.Error(1)
}

func (m *DeliveryRepository) MarkSent(ctx context.Context, notificationID string) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *DeliveryRepository) MarkFailed(ctx context.Context, notificationID string, reason string) error {
	args := m.Called(ctx, notificationID, reason)
	return args.Error(0)
}
