package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/model"
	"github.com/BuzzLyutic/team-tracker/internal/service"
	"github.com/BuzzLyutic/team-tracker/pkg/respond"
)

type TeamMemberHandler struct {
	service *service.TeamMemberService
	logger  *zap.Logger
}

func NewTeamMemberHandler(srv *service.TeamMemberService, logger *zap.Logger) *TeamMemberHandler {
	return &TeamMemberHandler{service: srv, logger: logger}
}

// Reorder applies every {id, display_order} pair independently. Pairs that
// fail are reported in details; the rest stay applied.
func (h *TeamMemberHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Members json.RawMessage `json:"members"`
	}
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "members array is required")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	raw := bytes.TrimSpace(req.Members)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		respond.Error(w, r, http.StatusBadRequest, "members array is required")
		return
	}
	if raw[0] != '[' {
		respond.Error(w, r, http.StatusBadRequest, "members must be an array")
		return
	}

	var updates []model.DisplayOrderUpdate
	if err := json.Unmarshal(raw, &updates); err != nil {
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid member entry: %v", err))
		return
	}

	result := h.service.Reorder(r.Context(), updates)
	if !result.OK() {
		respond.ErrorDetails(w, r, http.StatusInternalServerError, "failed to update some team members", result)
		return
	}
	respond.Success(w, r, "Team members reordered successfully")
}

func (h *TeamMemberHandler) ListByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(chi.URLParam(r, "teamID"), 10, 64)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid team id")
		return
	}

	members, err := h.service.ListByTeam(r.Context(), teamID)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string][]model.TeamMember{"members": members})
}

func (h *TeamMemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.TeamMember
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	member, err := h.service.Create(r.Context(), req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, map[string]model.TeamMember{"member": member})
}
