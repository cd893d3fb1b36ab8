package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/model"
	"github.com/BuzzLyutic/team-tracker/internal/repo"
	"github.com/BuzzLyutic/team-tracker/internal/repo/mocks"
	"github.com/BuzzLyutic/team-tracker/internal/service"
)

func TestTaskHandler_Get(t *testing.T) {
	stored := model.Task{ID: 42, ProjectID: 1, Name: "Write tests", Status: "todo"}

	tests := []struct {
		name      string
		id        string
		setupMock func(*mocks.TaskRepository)
		wantCode  int
		wantErr   string
	}{
		{
			name:      "non-numeric id",
			id:        "abc",
			setupMock: func(*mocks.TaskRepository) {},
			wantCode:  http.StatusBadRequest,
			wantErr:   "invalid task id",
		},
		{
			name: "absent id",
			id:   "99999",
			setupMock: func(m *mocks.TaskRepository) {
				m.On("Get", mock.Anything, int64(99999)).Return(model.Task{}, repo.ErrorNotFound)
			},
			wantCode: http.StatusNotFound,
			wantErr:  "task not found",
		},
		{
			name: "lookup failure collapses to not found",
			id:   "7",
			setupMock: func(m *mocks.TaskRepository) {
				m.On("Get", mock.Anything, int64(7)).Return(model.Task{}, errors.New("connection refused"))
			},
			wantCode: http.StatusNotFound,
			wantErr:  "task not found",
		},
		{
			name: "present id",
			id:   "42",
			setupMock: func(m *mocks.TaskRepository) {
				m.On("Get", mock.Anything, int64(42)).Return(stored, nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := new(mocks.TaskRepository)
			tt.setupMock(tasks)
			h := NewTaskHandler(service.NewTaskService(tasks, new(mocks.ProjectRepository), nil), zap.NewNop())

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/tasks/"+tt.id, nil), "id", tt.id)
			w := httptest.NewRecorder()
			h.Get(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				var body map[string]string
				decode(t, w, &body)
				assert.Equal(t, tt.wantErr, body["error"])
				return
			}

			var body struct {
				Task model.Task `json:"task"`
			}
			decode(t, w, &body)
			assert.Equal(t, stored, body.Task)
		})
	}
}

func TestTaskHandler_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		f := newFixture(t)
		f.projects.On("Get", mock.Anything, int64(1)).Return(model.Project{ID: 1, Name: "Apollo"}, nil)
		f.tasks.On("Create", mock.Anything, mock.Anything).Return(model.Task{ID: 10, ProjectID: 1, Name: "New", Status: "todo"}, nil)

		w := f.do(t, http.MethodPost, "/api/tasks", model.Task{ProjectID: 1, Name: "New"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/tasks/10", w.Header().Get("Location"))
	})

	t.Run("empty body", func(t *testing.T) {
		w := newFixture(t).do(t, http.MethodPost, "/api/tasks", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		w := newFixture(t).do(t, http.MethodPost, "/api/tasks", model.Task{ProjectID: 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	f.tasks.On("Get", mock.Anything, int64(3)).Return(model.Task{ID: 3, ProjectID: 1, Name: "Old", Status: "todo"}, nil)
	f.tasks.On("Update", mock.Anything, mock.Anything).Return(model.Task{ID: 3, ProjectID: 1, Name: "New", Status: "todo"}, nil)
	f.tasks.On("Delete", mock.Anything, int64(3)).Return(nil)
	f.tasks.On("Delete", mock.Anything, int64(4)).Return(repo.ErrorNotFound)

	w := f.do(t, http.MethodPatch, "/api/tasks/3", map[string]string{"name": "New"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodDelete, "/api/tasks/3", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodDelete, "/api/tasks/4", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
