package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the access tier of a user
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// User represents a local account linked to a Google identity
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	AvatarURL string    `json:"avatar_url,omitempty" db:"avatar_url"`
	GoogleID  string    `json:"google_id,omitempty" db:"google_id"`
	Role      UserRole  `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new User instance with the default student role
func NewUser(email, name, avatarURL, googleID string) *User {
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
		GoogleID:  googleID,
		Role:      RoleStudent,
		CreatedAt: time.Now().UTC(),
	}
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
