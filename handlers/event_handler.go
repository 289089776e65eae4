package handlers

import (
	"net/http"

	"github.com/keerthiramGR/college-event/middleware"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/services"
	"github.com/keerthiramGR/college-event/utils"
	"go.uber.org/zap"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	events *services.EventService
	logger *zap.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(events *services.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		events: events,
		logger: logger,
	}
}

// HandleList handles GET /api/events
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input := services.ListEventsInput{
		Category: query.Get("category"),
		Status:   query.Get("status"),
		Search:   query.Get("search"),
		Limit:    queryInt(r, "limit"),
		Offset:   queryInt(r, "offset"),
	}

	events, err := h.events.ListEvents(r.Context(), input)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: events})
}

// HandleGet handles GET /api/events/{id}
func (h *EventHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	event, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: event})
}

// HandleCreate handles POST /api/events
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	var input services.CreateEventInput
	if !decodeBody(w, r, &input, h.logger) {
		return
	}

	event, err := h.events.CreateEvent(r.Context(), input, user.ID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, SuccessResponse{Data: event})
}

// HandleUpdate handles PUT /api/events/{id}
func (h *EventHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var patch models.EventPatch
	if !decodeBody(w, r, &patch, h.logger) {
		return
	}

	event, err := h.events.UpdateEvent(r.Context(), id, patch)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: event})
}

// HandleDelete handles DELETE /api/events/{id}
func (h *EventHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.events.DeleteEvent(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}
