package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/service"
	"github.com/BuzzLyutic/team-tracker/pkg/respond"
)

type NotificationHandler struct {
	service *service.NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(srv *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: srv, logger: logger}
}

type markReadRequest struct {
	PCName string `json:"pc_name"`
	ID     string `json:"id"`
}

// MarkRead flips one notification (id given) or all of pc_name's
// notifications to read. Database errors are passed through to the client.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req markReadRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid json")
			return
		}
	}

	updated, err := h.service.MarkRead(r.Context(), req.PCName, req.ID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respond.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("mark read failed", zap.String("pc_name", req.PCName), zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Debug("notifications marked read", zap.String("pc_name", req.PCName), zap.Int64("rows", updated))
	respond.Success(w, r, "")
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	unread, _ := strconv.ParseBool(q.Get("unread"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	notifications, err := h.service.List(r.Context(), q.Get("pc_name"), unread, limit)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]interface{}{"notifications": notifications})
}
