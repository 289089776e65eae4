package models

import (
	"time"

	"github.com/google/uuid"
)

// EventRegistration links a user to an event they registered for
type EventRegistration struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	EventID      uuid.UUID `json:"event_id" db:"event_id"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// TableName returns the table name for the EventRegistration model
func (EventRegistration) TableName() string {
	return "event_registrations"
}

// NewEventRegistration creates a new EventRegistration instance
func NewEventRegistration(userID, eventID uuid.UUID) *EventRegistration {
	return &EventRegistration{
		ID:           uuid.New(),
		UserID:       userID,
		EventID:      eventID,
		RegisteredAt: time.Now().UTC(),
	}
}

// ClubMembership links a user to a club they joined
type ClubMembership struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	ClubID   uuid.UUID `json:"club_id" db:"club_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

// TableName returns the table name for the ClubMembership model
func (ClubMembership) TableName() string {
	return "club_memberships"
}

// NewClubMembership creates a new ClubMembership instance
func NewClubMembership(userID, clubID uuid.UUID) *ClubMembership {
	return &ClubMembership{
		ID:       uuid.New(),
		UserID:   userID,
		ClubID:   clubID,
		JoinedAt: time.Now().UTC(),
	}
}
