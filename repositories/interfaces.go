package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
)

// ErrNotFound is returned by repositories when a requested row does not exist.
// Callers detect it with errors.Is and translate it into their own error taxonomy.
var ErrNotFound = errors.New("not found")

// EventFilter narrows event listings. Zero-value fields are ignored.
type EventFilter struct {
	Category string
	Status   string
	Search   string
	Limit    int
	Offset   int
}

// ClubFilter narrows club listings. Zero-value fields are ignored.
type ClubFilter struct {
	Search string
	Limit  int
	Offset int
}

// EventWithStats is an event together with its registration count
type EventWithStats struct {
	models.Event
	RegistrationCount int `json:"registration_count"`
}

// ClubWithStats is a club together with its member count
type ClubWithStats struct {
	models.Club
	MemberCount int `json:"member_count"`
}

// RegistrationWithEvent is a registration together with the event it targets
type RegistrationWithEvent struct {
	models.EventRegistration
	Event models.Event `json:"event"`
}

// RegistrationWithUser is a registration together with the registered user
type RegistrationWithUser struct {
	models.EventRegistration
	User models.User `json:"user"`
}

// MembershipWithClub is a membership together with the club it belongs to
type MembershipWithClub struct {
	models.ClubMembership
	Club models.Club `json:"club"`
}

// MembershipWithUser is a membership together with the member's account
type MembershipWithUser struct {
	models.ClubMembership
	User models.User `json:"user"`
}

// UserRepository handles user account data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByGoogleID retrieves a user by Google subject identifier
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)

	// List retrieves users with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]*models.User, error)

	// UpdateProfile refreshes the display name and avatar of a user
	UpdateProfile(ctx context.Context, id uuid.UUID, name, avatarURL string) error

	// UpdateRole changes the role of a user
	UpdateRole(ctx context.Context, id uuid.UUID, role models.UserRole) error
}

// EventRepository handles event data operations
type EventRepository interface {
	// Create creates a new event
	Create(ctx context.Context, event *models.Event) error

	// GetByID retrieves an event with its registration count
	GetByID(ctx context.Context, id uuid.UUID) (*EventWithStats, error)

	// List retrieves events matching the filter, soonest event date first
	List(ctx context.Context, filter EventFilter) ([]*EventWithStats, error)

	// Update persists the full event row
	Update(ctx context.Context, event *models.Event) error

	// Delete deletes an event and its registrations
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClubRepository handles club data operations
type ClubRepository interface {
	// Create creates a new club
	Create(ctx context.Context, club *models.Club) error

	// GetByID retrieves a club with its member count
	GetByID(ctx context.Context, id uuid.UUID) (*ClubWithStats, error)

	// List retrieves clubs matching the filter, newest first
	List(ctx context.Context, filter ClubFilter) ([]*ClubWithStats, error)

	// Update persists the full club row
	Update(ctx context.Context, club *models.Club) error

	// Delete deletes a club, its memberships and its announcements
	Delete(ctx context.Context, id uuid.UUID) error
}

// RegistrationRepository handles event registration data operations
type RegistrationRepository interface {
	// Register inserts the registration unless the event is at capacity or the
	// user is already registered. maxParticipants nil means unlimited.
	// Returns false without error when the insert was suppressed.
	Register(ctx context.Context, reg *models.EventRegistration, maxParticipants *int) (bool, error)

	// Exists reports whether the user is registered for the event
	Exists(ctx context.Context, userID, eventID uuid.UUID) (bool, error)

	// ListByUser retrieves a user's registrations with event details, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*RegistrationWithEvent, error)

	// ListByEvent retrieves an event's registrations with user details
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*RegistrationWithUser, error)

	// Delete removes a user's registration for an event
	Delete(ctx context.Context, userID, eventID uuid.UUID) error
}

// MembershipRepository handles club membership data operations
type MembershipRepository interface {
	// Join inserts the membership unless the user is already a member.
	// Returns false without error when the insert was suppressed.
	Join(ctx context.Context, membership *models.ClubMembership) (bool, error)

	// Exists reports whether the user is a member of the club
	Exists(ctx context.Context, userID, clubID uuid.UUID) (bool, error)

	// ListByUser retrieves a user's memberships with club details, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*MembershipWithClub, error)

	// ListByClub retrieves a club's memberships with user details
	ListByClub(ctx context.Context, clubID uuid.UUID) ([]*MembershipWithUser, error)

	// Delete removes a user's membership in a club
	Delete(ctx context.Context, userID, clubID uuid.UUID) error
}

// AnnouncementRepository handles club announcement data operations
type AnnouncementRepository interface {
	// Create creates a new announcement
	Create(ctx context.Context, announcement *models.ClubAnnouncement) error

	// ListByClub retrieves a club's announcements, newest first
	ListByClub(ctx context.Context, clubID uuid.UUID) ([]*models.ClubAnnouncement, error)

	// Delete deletes an announcement
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users         UserRepository
	Events        EventRepository
	Clubs         ClubRepository
	Registrations RegistrationRepository
	Memberships   MembershipRepository
	Announcements AnnouncementRepository
}
