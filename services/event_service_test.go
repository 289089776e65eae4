package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventService_CreateEvent(t *testing.T) {
	logger := zap.NewNop()
	createdBy := uuid.New()

	t.Run("creates an upcoming event", func(t *testing.T) {
		limit := 200
		input := CreateEventInput{
			Title:           "Tech Fest 2026",
			Description:     "Annual technology festival",
			Category:        "Technical",
			EventDate:       time.Now().UTC().Add(72 * time.Hour),
			Venue:           "Main Auditorium",
			PosterURL:       "https://example.com/poster.png",
			MaxParticipants: &limit,
		}

		events := new(MockEventRepository)
		events.On("Create", mock.Anything, mock.MatchedBy(func(e *models.Event) bool {
			return e.Title == input.Title &&
				e.Status == models.EventUpcoming &&
				e.CreatedBy != nil && *e.CreatedBy == createdBy &&
				e.MaxParticipants == &limit
		})).Return(nil)

		svc := NewEventService(events, logger)

		created, err := svc.CreateEvent(context.Background(), input, createdBy)
		require.NoError(t, err)
		assert.Equal(t, input.Title, created.Title)
		assert.Equal(t, models.EventUpcoming, created.Status)
		assert.Zero(t, created.RegistrationCount)
		events.AssertExpectations(t)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		input := CreateEventInput{
			Title:     "Game Night",
			Category:  "Gaming",
			EventDate: time.Now().UTC().Add(24 * time.Hour),
			Venue:     "Common Room",
		}

		svc := NewEventService(new(MockEventRepository), logger)

		_, err := svc.CreateEvent(context.Background(), input, createdBy)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("insert failure returns internal error", func(t *testing.T) {
		input := CreateEventInput{
			Title:     "Tech Fest 2026",
			Category:  "Technical",
			EventDate: time.Now().UTC().Add(72 * time.Hour),
			Venue:     "Main Auditorium",
		}

		events := new(MockEventRepository)
		events.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

		svc := NewEventService(events, logger)

		_, err := svc.CreateEvent(context.Background(), input, createdBy)
		assert.True(t, IsInternalError(err))
	})
}

func TestEventService_GetEvent(t *testing.T) {
	logger := zap.NewNop()

	t.Run("found", func(t *testing.T) {
		event := upcomingEvent(nil, 12)
		events := new(MockEventRepository)
		events.On("GetByID", mock.Anything, event.ID).Return(event, nil)

		svc := NewEventService(events, logger)

		got, err := svc.GetEvent(context.Background(), event.ID)
		require.NoError(t, err)
		assert.Equal(t, 12, got.RegistrationCount)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		events := new(MockEventRepository)
		events.On("GetByID", mock.Anything, id).Return(nil, notFound("event"))

		svc := NewEventService(events, logger)

		_, err := svc.GetEvent(context.Background(), id)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_ListEvents(t *testing.T) {
	logger := zap.NewNop()

	t.Run("passes filters with clamped pagination", func(t *testing.T) {
		events := new(MockEventRepository)
		events.On("List", mock.Anything, repositories.EventFilter{
			Category: "Technical",
			Status:   "upcoming",
			Search:   "fest",
			Limit:    maxListLimit,
			Offset:   10,
		}).Return([]*repositories.EventWithStats{upcomingEvent(nil, 0)}, nil)

		svc := NewEventService(events, logger)

		got, err := svc.ListEvents(context.Background(), ListEventsInput{
			Category: "Technical",
			Status:   "upcoming",
			Search:   "fest",
			Limit:    9999,
			Offset:   10,
		})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		events.AssertExpectations(t)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		svc := NewEventService(new(MockEventRepository), logger)

		_, err := svc.ListEvents(context.Background(), ListEventsInput{Category: "Gaming"})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc := NewEventService(new(MockEventRepository), logger)

		_, err := svc.ListEvents(context.Background(), ListEventsInput{Status: "postponed"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	logger := zap.NewNop()

	t.Run("applies a partial update", func(t *testing.T) {
		current := upcomingEvent(nil, 7)
		title := "Tech Fest 2026 (Rescheduled)"
		status := models.EventOngoing
		patch := models.EventPatch{Title: &title, Status: &status}

		events := new(MockEventRepository)
		events.On("GetByID", mock.Anything, current.ID).Return(current, nil)
		events.On("Update", mock.Anything, mock.MatchedBy(func(e *models.Event) bool {
			return e.ID == current.ID &&
				e.Title == title &&
				e.Status == status &&
				e.Venue == current.Venue
		})).Return(nil)

		svc := NewEventService(events, logger)

		updated, err := svc.UpdateEvent(context.Background(), current.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, title, updated.Title)
		assert.Equal(t, 7, updated.RegistrationCount)
		events.AssertExpectations(t)
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		svc := NewEventService(new(MockEventRepository), logger)

		_, err := svc.UpdateEvent(context.Background(), uuid.New(), models.EventPatch{})
		assert.True(t, IsValidationError(err))
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		status := models.EventStatus("postponed")
		svc := NewEventService(new(MockEventRepository), logger)

		_, err := svc.UpdateEvent(context.Background(), uuid.New(), models.EventPatch{Status: &status})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		title := "New Title"

		events := new(MockEventRepository)
		events.On("GetByID", mock.Anything, id).Return(nil, notFound("event"))

		svc := NewEventService(events, logger)

		_, err := svc.UpdateEvent(context.Background(), id, models.EventPatch{Title: &title})
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	logger := zap.NewNop()

	t.Run("deletes", func(t *testing.T) {
		id := uuid.New()
		events := new(MockEventRepository)
		events.On("Delete", mock.Anything, id).Return(nil)

		svc := NewEventService(events, logger)

		require.NoError(t, svc.DeleteEvent(context.Background(), id))
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		events := new(MockEventRepository)
		events.On("Delete", mock.Anything, id).Return(notFound("event"))

		svc := NewEventService(events, logger)

		err := svc.DeleteEvent(context.Background(), id)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}
