package models

import (
	"time"

	"github.com/google/uuid"
)

// EventCategory represents the category of an event
type EventCategory string

const (
	CategoryTechnical EventCategory = "Technical"
	CategoryCultural  EventCategory = "Cultural"
	CategorySports    EventCategory = "Sports"
)

// EventStatus represents the lifecycle status of an event
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// ValidEventCategory reports whether s is a known event category
func ValidEventCategory(s string) bool {
	switch EventCategory(s) {
	case CategoryTechnical, CategoryCultural, CategorySports:
		return true
	}
	return false
}

// ValidEventStatus reports whether s is a known event status
func ValidEventStatus(s string) bool {
	switch EventStatus(s) {
	case EventUpcoming, EventOngoing, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// Event represents a college event
type Event struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	Title           string        `json:"title" db:"title"`
	Description     string        `json:"description,omitempty" db:"description"`
	Category        EventCategory `json:"category" db:"category"`
	EventDate       time.Time     `json:"event_date" db:"event_date"`
	Venue           string        `json:"venue" db:"venue"`
	PosterURL       string        `json:"poster_url,omitempty" db:"poster_url"`
	Status          EventStatus   `json:"status" db:"status"`
	MaxParticipants *int          `json:"max_participants,omitempty" db:"max_participants"`
	CreatedBy       *uuid.UUID    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// NewEvent creates a new Event instance in the upcoming state
func NewEvent(title, description string, category EventCategory, eventDate time.Time, venue string, createdBy uuid.UUID) *Event {
	return &Event{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Category:    category,
		EventDate:   eventDate,
		Venue:       venue,
		Status:      EventUpcoming,
		CreatedBy:   &createdBy,
		CreatedAt:   time.Now().UTC(),
	}
}

// HasCapacityLimit reports whether the event caps its participant count
func (e *Event) HasCapacityLimit() bool {
	return e.MaxParticipants != nil && *e.MaxParticipants > 0
}

// EventPatch is a partial update: nil fields leave the stored value unchanged
type EventPatch struct {
	Title           *string        `json:"title,omitempty"`
	Description     *string        `json:"description,omitempty"`
	Category        *EventCategory `json:"category,omitempty"`
	EventDate       *time.Time     `json:"event_date,omitempty"`
	Venue           *string        `json:"venue,omitempty"`
	PosterURL       *string        `json:"poster_url,omitempty"`
	Status          *EventStatus   `json:"status,omitempty"`
	MaxParticipants *int           `json:"max_participants,omitempty"`
}

// IsEmpty reports whether the patch contains no fields to update
func (p *EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.EventDate == nil && p.Venue == nil && p.PosterURL == nil &&
		p.Status == nil && p.MaxParticipants == nil
}

// Apply merges the patch into the event, leaving absent fields unchanged
func (p *EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.EventDate != nil {
		e.EventDate = *p.EventDate
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.PosterURL != nil {
		e.PosterURL = *p.PosterURL
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.MaxParticipants != nil {
		e.MaxParticipants = p.MaxParticipants
	}
}
