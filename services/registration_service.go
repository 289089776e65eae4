package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/repositories"
	"go.uber.org/zap"
)

// RegistrationService handles event sign-ups and club joins
type RegistrationService struct {
	events        repositories.EventRepository
	clubs         repositories.ClubRepository
	registrations repositories.RegistrationRepository
	memberships   repositories.MembershipRepository
	logger        *zap.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	events repositories.EventRepository,
	clubs repositories.ClubRepository,
	registrations repositories.RegistrationRepository,
	memberships repositories.MembershipRepository,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		events:        events,
		clubs:         clubs,
		registrations: registrations,
		memberships:   memberships,
		logger:        logger,
	}
}

// RegisterForEvent registers the user for an event. Duplicate registrations
// and over-capacity sign-ups are rejected; the database-level guard makes the
// capacity check safe under concurrent requests.
func (s *RegistrationService) RegisterForEvent(ctx context.Context, userID, eventID uuid.UUID) (*models.EventRegistration, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, WrapInternal("failed to get event", err)
	}

	// Pre-checks give precise errors on the common paths. The guarded insert
	// below remains the authority when requests race.
	exists, err := s.registrations.Exists(ctx, userID, eventID)
	if err != nil {
		return nil, WrapInternal("failed to check registration", err)
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}
	if event.HasCapacityLimit() && event.RegistrationCount >= *event.MaxParticipants {
		return nil, ErrEventFull
	}

	reg := models.NewEventRegistration(userID, eventID)
	inserted, err := s.registrations.Register(ctx, reg, event.MaxParticipants)
	if err != nil {
		return nil, WrapInternal("failed to register for event", err)
	}

	if !inserted {
		// A concurrent request won the race. Re-check to report which guard fired.
		exists, err := s.registrations.Exists(ctx, userID, eventID)
		if err != nil {
			return nil, WrapInternal("failed to check registration", err)
		}
		if exists {
			return nil, ErrAlreadyRegistered
		}
		return nil, ErrEventFull
	}

	s.logger.Info("user registered for event",
		zap.String("user_id", userID.String()),
		zap.String("event_id", eventID.String()))

	return reg, nil
}

// UnregisterFromEvent removes the user's registration for an event
func (s *RegistrationService) UnregisterFromEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	if err := s.registrations.Delete(ctx, userID, eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRegistrationNotFound
		}
		return WrapInternal("failed to unregister from event", err)
	}

	s.logger.Info("user unregistered from event",
		zap.String("user_id", userID.String()),
		zap.String("event_id", eventID.String()))
	return nil
}

// MyEvents retrieves the user's registrations with event details
func (s *RegistrationService) MyEvents(ctx context.Context, userID uuid.UUID) ([]*repositories.RegistrationWithEvent, error) {
	registrations, err := s.registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, WrapInternal("failed to list registrations", err)
	}
	return registrations, nil
}

// EventRegistrants retrieves an event's registrations with user details
func (s *RegistrationService) EventRegistrants(ctx context.Context, eventID uuid.UUID) ([]*repositories.RegistrationWithUser, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, WrapInternal("failed to get event", err)
	}

	registrants, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, WrapInternal("failed to list registrants", err)
	}
	return registrants, nil
}

// JoinClub adds the user to a club. Joining twice is rejected.
func (s *RegistrationService) JoinClub(ctx context.Context, userID, clubID uuid.UUID) (*models.ClubMembership, error) {
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, WrapInternal("failed to get club", err)
	}

	membership := models.NewClubMembership(userID, clubID)
	inserted, err := s.memberships.Join(ctx, membership)
	if err != nil {
		return nil, WrapInternal("failed to join club", err)
	}
	if !inserted {
		return nil, ErrAlreadyMember
	}

	s.logger.Info("user joined club",
		zap.String("user_id", userID.String()),
		zap.String("club_id", clubID.String()))

	return membership, nil
}

// LeaveClub removes the user's membership in a club
func (s *RegistrationService) LeaveClub(ctx context.Context, userID, clubID uuid.UUID) error {
	if err := s.memberships.Delete(ctx, userID, clubID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMembershipNotFound
		}
		return WrapInternal("failed to leave club", err)
	}

	s.logger.Info("user left club",
		zap.String("user_id", userID.String()),
		zap.String("club_id", clubID.String()))
	return nil
}

// MyClubs retrieves the user's memberships with club details
func (s *RegistrationService) MyClubs(ctx context.Context, userID uuid.UUID) ([]*repositories.MembershipWithClub, error) {
	memberships, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, WrapInternal("failed to list memberships", err)
	}
	return memberships, nil
}
