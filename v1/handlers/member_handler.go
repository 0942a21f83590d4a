package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gov-dx-sandbox/member-service/shared/utils"
	"github.com/gov-dx-sandbox/member-service/v1/models"
	"github.com/gov-dx-sandbox/member-service/v1/services"
)

// MemberHandler serves the /members REST resource
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// CreateMember handles POST /members
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req models.MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid member request body", "error", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON input")
		return
	}

	member, err := h.memberService.CreateMember(r.Context(), req)
	if err != nil {
		h.respondWithServiceError(w, models.OpCreateMember, 0, err)
		return
	}

	slog.Info("Member created", "id", member.ID)
	utils.RespondWithJSON(w, http.StatusCreated, member)
}

// GetMember handles GET /members/{id}
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, ok := parseMemberID(w, r)
	if !ok {
		return
	}

	member, err := h.memberService.GetMember(r.Context(), id)
	if err != nil {
		h.respondWithServiceError(w, models.OpGetMember, id, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, member)
}

// ListMembers handles GET /members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberService.ListMembers(r.Context())
	if err != nil {
		h.respondWithServiceError(w, models.OpListMembers, 0, err)
		return
	}

	slog.Info("Members listed", "count", len(members))
	utils.RespondWithJSON(w, http.StatusOK, members)
}

// UpdateMember handles PUT /members/{id}
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := parseMemberID(w, r)
	if !ok {
		return
	}

	var req models.MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid member request body", "id", id, "error", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON input")
		return
	}

	member, err := h.memberService.UpdateMember(r.Context(), id, req)
	if err != nil {
		h.respondWithServiceError(w, models.OpUpdateMember, id, err)
		return
	}

	slog.Info("Member updated", "id", id)
	utils.RespondWithJSON(w, http.StatusOK, member)
}

// DeleteMember handles DELETE /members/{id}
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := parseMemberID(w, r)
	if !ok {
		return
	}

	if err := h.memberService.DeleteMember(r.Context(), id); err != nil {
		h.respondWithServiceError(w, models.OpDeleteMember, id, err)
		return
	}

	slog.Info("Member deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *MemberHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.memberService.Ping(r.Context()); err != nil {
		slog.Error("Database health check failed", "error", err)
		utils.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"reason": "database_unavailable",
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "member-service",
	})
}

// respondWithServiceError maps service errors to bare 404/500 responses
func (h *MemberHandler) respondWithServiceError(w http.ResponseWriter, op string, id int64, err error) {
	if errors.Is(err, models.ErrMemberNotFound) {
		slog.Warn("Member not found", "operation", op, "id", id)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	slog.Error("Failed to "+op, "id", id, "error", err)
	w.WriteHeader(http.StatusInternalServerError)
}

func parseMemberID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("Invalid member id", "id", raw)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid member id")
		return 0, false
	}
	return id, true
}
