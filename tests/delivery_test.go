package tests

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/model"
	"github.com/BuzzLyutic/team-tracker/internal/repo"
	"github.com/BuzzLyutic/team-tracker/internal/worker"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []model.Delivery
}

func (s *recordingSender) SendAssignment(d model.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, d)
	return nil
}

func (s *recordingSender) deliveries() []model.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Delivery(nil), s.sent...)
}

func TestE2E_AssignmentEmailDelivered(t *testing.T) {
	server, pool, cleanup := setupE2EServer(t)
	defer cleanup()

	projectID := SeedProject(t, pool, "Apollo", model.ProjectInProgress)
	SeedTeamMembers(t, pool, 1, 1)

	var taskID int64
	require.NoError(t, pool.QueryRow(context.Background(),
		"INSERT INTO tasks (project_id, name, status) VALUES ($1, 'Wire CI', 'todo') RETURNING id",
		projectID).Scan(&taskID))

	assignee := "PC-1"
	resp := doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/tasks/%d", server.URL, taskID), model.TaskPatch{Assignee: &assignee})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	sender := &recordingSender{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workers := worker.NewPool(repo.NewDeliveryRepo(pool), sender, zap.NewNop(), 2, 50*time.Millisecond)
	workers.Start(ctx)
	defer workers.Stop()

	delivered := WaitForCondition(t, 10*time.Second, func() bool {
		var status string
		err := pool.QueryRow(context.Background(), `
			SELECT d.status
			FROM notification_deliveries d
			JOIN notifications n ON n.id = d.notification_id
			WHERE n.task_id = $1 AND n.action = 'assigned'
		`, taskID).Scan(&status)
		return err == nil && status == model.DeliverySent
	})
	require.True(t, delivered, "assignment delivery was not marked sent")

	sent := sender.deliveries()
	require.Len(t, sent, 1)
	assert.Equal(t, "member1@example.com", sent[0].Email)
	assert.Equal(t, "Member 1", sent[0].MemberName)
	assert.Equal(t, model.ActionAssigned, sent[0].Notification.Action)
	require.NotNil(t, sent[0].Notification.TaskID)
	assert.Equal(t, taskID, *sent[0].Notification.TaskID)

	var read bool
	require.NoError(t, pool.QueryRow(context.Background(),
		"SELECT is_read FROM notifications WHERE id = $1", sent[0].Notification.ID).Scan(&read))
	assert.False(t, read, "delivery must not touch the notification row")
}
