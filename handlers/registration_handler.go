package handlers

import (
	"net/http"

	"github.com/keerthiramGR/college-event/middleware"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/services"
	"github.com/keerthiramGR/college-event/utils"
	"go.uber.org/zap"
)

// RegistrationHandler handles event sign-up and club membership HTTP requests
type RegistrationHandler struct {
	registrations *services.RegistrationService
	logger        *zap.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrations *services.RegistrationService, logger *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		logger:        logger,
	}
}

// caller extracts the authenticated user, writing a 401 response when absent
func (h *RegistrationHandler) caller(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return nil, false
	}
	return user, true
}

// HandleRegister handles POST /api/registrations/events/{event_id}
func (h *RegistrationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	eventID, ok := idParam(w, r, "event_id")
	if !ok {
		return
	}

	registration, err := h.registrations.RegisterForEvent(r.Context(), user.ID, eventID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, SuccessResponse{Data: registration})
}

// HandleUnregister handles DELETE /api/registrations/events/{event_id}
func (h *RegistrationHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	eventID, ok := idParam(w, r, "event_id")
	if !ok {
		return
	}

	if err := h.registrations.UnregisterFromEvent(r.Context(), user.ID, eventID); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Unregistered successfully"})
}

// HandleMyEvents handles GET /api/registrations/events/my
func (h *RegistrationHandler) HandleMyEvents(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	registrations, err := h.registrations.MyEvents(r.Context(), user.ID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: registrations})
}

// HandleEventRegistrants handles GET /api/registrations/events/{event_id}/users
func (h *RegistrationHandler) HandleEventRegistrants(w http.ResponseWriter, r *http.Request) {
	eventID, ok := idParam(w, r, "event_id")
	if !ok {
		return
	}

	registrants, err := h.registrations.EventRegistrants(r.Context(), eventID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: registrants})
}

// HandleJoinClub handles POST /api/registrations/clubs/{club_id}
func (h *RegistrationHandler) HandleJoinClub(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	clubID, ok := idParam(w, r, "club_id")
	if !ok {
		return
	}

	membership, err := h.registrations.JoinClub(r.Context(), user.ID, clubID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, SuccessResponse{Data: membership})
}

// HandleLeaveClub handles DELETE /api/registrations/clubs/{club_id}
func (h *RegistrationHandler) HandleLeaveClub(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	clubID, ok := idParam(w, r, "club_id")
	if !ok {
		return
	}

	if err := h.registrations.LeaveClub(r.Context(), user.ID, clubID); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Left club successfully"})
}

// HandleMyClubs handles GET /api/registrations/clubs/my
func (h *RegistrationHandler) HandleMyClubs(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	memberships, err := h.registrations.MyClubs(r.Context(), user.ID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: memberships})
}
