package handlers

import (
	"net/http"

	"github.com/keerthiramGR/college-event/middleware"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/services"
	"github.com/keerthiramGR/college-event/utils"
	"go.uber.org/zap"
)

// ClubHandler handles club, roster and announcement HTTP requests
type ClubHandler struct {
	clubs  *services.ClubService
	logger *zap.Logger
}

// NewClubHandler creates a new ClubHandler
func NewClubHandler(clubs *services.ClubService, logger *zap.Logger) *ClubHandler {
	return &ClubHandler{
		clubs:  clubs,
		logger: logger,
	}
}

// HandleList handles GET /api/clubs
func (h *ClubHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	clubs, err := h.clubs.ListClubs(r.Context(), search, queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: clubs})
}

// HandleGet handles GET /api/clubs/{id}
func (h *ClubHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	club, err := h.clubs.GetClub(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: club})
}

// HandleCreate handles POST /api/clubs
func (h *ClubHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	var input services.CreateClubInput
	if !decodeBody(w, r, &input, h.logger) {
		return
	}

	club, err := h.clubs.CreateClub(r.Context(), input, user.ID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, SuccessResponse{Data: club})
}

// HandleUpdate handles PUT /api/clubs/{id}
func (h *ClubHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var patch models.ClubPatch
	if !decodeBody(w, r, &patch, h.logger) {
		return
	}

	club, err := h.clubs.UpdateClub(r.Context(), id, patch)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: club})
}

// HandleDelete handles DELETE /api/clubs/{id}
func (h *ClubHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.clubs.DeleteClub(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Club deleted successfully"})
}

// HandleListMembers handles GET /api/clubs/{id}/members
func (h *ClubHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	members, err := h.clubs.ListMembers(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: members})
}

// HandleCreateAnnouncement handles POST /api/clubs/{id}/announcements
func (h *ClubHandler) HandleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	var input services.CreateAnnouncementInput
	if !decodeBody(w, r, &input, h.logger) {
		return
	}

	announcement, err := h.clubs.CreateAnnouncement(r.Context(), id, input, user.ID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, SuccessResponse{Data: announcement})
}

// HandleDeleteAnnouncement handles DELETE /api/clubs/{id}/announcements/{announcement_id}
func (h *ClubHandler) HandleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcementID, ok := idParam(w, r, "announcement_id")
	if !ok {
		return
	}

	if err := h.clubs.DeleteAnnouncement(r.Context(), announcementID); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Announcement deleted successfully"})
}

// HandleListAnnouncements handles GET /api/clubs/{id}/announcements
func (h *ClubHandler) HandleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	announcements, err := h.clubs.ListAnnouncements(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: announcements})
}
