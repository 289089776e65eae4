package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/repositories"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// clampLimit normalizes a caller supplied page size into [1, maxListLimit]
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// CreateEventInput carries the fields for creating an event
type CreateEventInput struct {
	Title           string    `json:"title" validate:"required,max=255"`
	Description     string    `json:"description"`
	Category        string    `json:"category" validate:"required"`
	EventDate       time.Time `json:"event_date" validate:"required"`
	Venue           string    `json:"venue" validate:"required,max=255"`
	PosterURL       string    `json:"poster_url"`
	MaxParticipants *int      `json:"max_participants" validate:"omitempty,gt=0"`
}

// ListEventsInput carries the filters for listing events
type ListEventsInput struct {
	Category string
	Status   string
	Search   string
	Limit    int
	Offset   int
}

// EventService handles event lifecycle operations
type EventService struct {
	events repositories.EventRepository
	logger *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(events repositories.EventRepository, logger *zap.Logger) *EventService {
	return &EventService{
		events: events,
		logger: logger,
	}
}

// CreateEvent creates a new event in the upcoming state
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput, createdBy uuid.UUID) (*repositories.EventWithStats, error) {
	if !models.ValidEventCategory(input.Category) {
		return nil, ErrInvalidCategory.WithDetail("category", input.Category)
	}

	event := models.NewEvent(input.Title, input.Description, models.EventCategory(input.Category), input.EventDate, input.Venue, createdBy)
	event.PosterURL = input.PosterURL
	event.MaxParticipants = input.MaxParticipants

	if err := s.events.Create(ctx, event); err != nil {
		return nil, WrapInternal("failed to create event", err)
	}

	s.logger.Info("event created",
		zap.String("id", event.ID.String()),
		zap.String("title", event.Title))

	return &repositories.EventWithStats{Event: *event}, nil
}

// GetEvent retrieves an event with its registration count
func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*repositories.EventWithStats, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, WrapInternal("failed to get event", err)
	}
	return event, nil
}

// ListEvents retrieves events matching the filters
func (s *EventService) ListEvents(ctx context.Context, input ListEventsInput) ([]*repositories.EventWithStats, error) {
	if input.Category != "" && !models.ValidEventCategory(input.Category) {
		return nil, ErrInvalidCategory.WithDetail("category", input.Category)
	}
	if input.Status != "" && !models.ValidEventStatus(input.Status) {
		return nil, ErrInvalidStatus.WithDetail("status", input.Status)
	}

	filter := repositories.EventFilter{
		Category: input.Category,
		Status:   input.Status,
		Search:   input.Search,
		Limit:    clampLimit(input.Limit),
	}
	if input.Offset > 0 {
		filter.Offset = input.Offset
	}

	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, WrapInternal("failed to list events", err)
	}
	return events, nil
}

// UpdateEvent applies a partial update to an event
func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) (*repositories.EventWithStats, error) {
	if patch.IsEmpty() {
		return nil, ErrInvalidInput.WithDetail("reason", "no fields to update")
	}
	if patch.Category != nil && !models.ValidEventCategory(string(*patch.Category)) {
		return nil, ErrInvalidCategory.WithDetail("category", string(*patch.Category))
	}
	if patch.Status != nil && !models.ValidEventStatus(string(*patch.Status)) {
		return nil, ErrInvalidStatus.WithDetail("status", string(*patch.Status))
	}

	current, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, WrapInternal("failed to get event", err)
	}

	updated := current.Event
	patch.Apply(&updated)

	if err := s.events.Update(ctx, &updated); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, WrapInternal("failed to update event", err)
	}

	s.logger.Info("event updated", zap.String("id", id.String()))
	return &repositories.EventWithStats{Event: updated, RegistrationCount: current.RegistrationCount}, nil
}

// DeleteEvent deletes an event along with its registrations
func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return WrapInternal("failed to delete event", err)
	}

	s.logger.Info("event deleted", zap.String("id", id.String()))
	return nil
}
