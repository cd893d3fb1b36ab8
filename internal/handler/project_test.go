package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/team-tracker/internal/model"
)

func TestProjectHandler_StatusViews(t *testing.T) {
	f := newFixture(t)
	f.projects.On("ListByStatus", mock.Anything, model.ProjectOnHold).
		Return([]model.Project{{ID: 2, Name: "Hermes", Status: model.ProjectOnHold}}, nil)

	w := f.do(t, http.MethodGet, "/api/projects?status="+url.QueryEscape(model.ProjectOnHold), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Projects []model.Project `json:"projects"`
	}
	decode(t, w, &body)
	assert.Len(t, body.Projects, 1)
	assert.Equal(t, model.ProjectOnHold, body.Projects[0].Status)

	w = f.do(t, http.MethodGet, "/api/projects?status=Archived", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_CreateAndUpdateStatus(t *testing.T) {
	f := newFixture(t)
	f.projects.On("Create", mock.Anything, mock.Anything).Return(model.Project{ID: 1, Name: "Apollo", Status: model.ProjectNotStarted}, nil)
	f.projects.On("UpdateStatus", mock.Anything, int64(1), model.ProjectCompleted).
		Return(model.Project{ID: 1, Name: "Apollo", Status: model.ProjectCompleted}, nil)

	w := f.do(t, http.MethodPost, "/api/projects", model.Project{Name: "Apollo"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPatch, "/api/projects/1/status", map[string]string{"status": model.ProjectCompleted})
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPatch, "/api/projects/1/status", map[string]string{"status": "Done-ish"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
