package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/team-tracker/internal/model"
)

func TestNotificationHandler_MarkRead(t *testing.T) {
	const id = "6f1c1f59-4c57-4bde-9a84-0b1c6b2f7a10"

	t.Run("all for identity", func(t *testing.T) {
		f := newFixture(t)
		f.notifications.On("MarkAllRead", mock.Anything, "PC-1").Return(int64(3), nil).Once()

		w := f.do(t, http.MethodPost, "/api/notifications/mark-read", map[string]string{"pc_name": "PC-1"})

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]bool
		decode(t, w, &body)
		assert.True(t, body["success"])
		f.notifications.AssertExpectations(t)
	})

	t.Run("single notification", func(t *testing.T) {
		f := newFixture(t)
		f.notifications.On("MarkRead", mock.Anything, "PC-1", id).Return(int64(1), nil).Once()

		w := f.do(t, http.MethodPost, "/api/notifications/mark-read", map[string]string{"pc_name": "PC-1", "id": id})

		assert.Equal(t, http.StatusOK, w.Code)
		f.notifications.AssertExpectations(t)
		f.notifications.AssertNotCalled(t, "MarkAllRead", mock.Anything, mock.Anything)
	})

	t.Run("missing pc_name", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(t, http.MethodPost, "/api/notifications/mark-read", map[string]string{"id": id})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		w := newFixture(t).do(t, http.MethodPost, "/api/notifications/mark-read", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("database error is surfaced", func(t *testing.T) {
		f := newFixture(t)
		f.notifications.On("MarkAllRead", mock.Anything, "PC-1").Return(int64(0), errors.New("permission denied for table notifications"))

		w := f.do(t, http.MethodPost, "/api/notifications/mark-read", map[string]string{"pc_name": "PC-1"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]string
		decode(t, w, &body)
		assert.Equal(t, "permission denied for table notifications", body["error"])
	})
}

func TestNotificationHandler_List(t *testing.T) {
	f := newFixture(t)
	f.notifications.On("List", mock.Anything, model.NotificationFilter{PCName: "PC-1", UnreadOnly: true, Limit: 50}).
		Return([]model.Notification{{ID: "n-1", PCName: "PC-1", Action: model.ActionCreated}}, nil)

	w := f.do(t, http.MethodGet, "/api/notifications?pc_name=PC-1&unread=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/notifications", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
