package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/repo/mocks"
	"github.com/BuzzLyutic/team-tracker/internal/service"
)

type fixture struct {
	tasks         *mocks.TaskRepository
	projects      *mocks.ProjectRepository
	members       *mocks.TeamMemberRepository
	notifications *mocks.NotificationRepository
	router        http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		tasks:         new(mocks.TaskRepository),
		projects:      new(mocks.ProjectRepository),
		members:       new(mocks.TeamMemberRepository),
		notifications: new(mocks.NotificationRepository),
	}
	logger := zap.NewNop()
	notifier := service.NewNotificationService(f.notifications, logger)

	f.router = NewRouter(Handlers{
		Tasks:         NewTaskHandler(service.NewTaskService(f.tasks, f.projects, notifier), logger),
		Projects:      NewProjectHandler(service.NewProjectService(f.projects, nil), logger),
		TeamMembers:   NewTeamMemberHandler(service.NewTeamMemberService(f.members, logger, 4), logger),
		Notifications: NewNotificationHandler(notifier, logger),
	}, logger)
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf []byte
	switch b := body.(type) {
	case nil:
	case string:
		buf = []byte(b)
	default:
		buf, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// withURLParam attaches a chi route param for calling a handler method directly.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
