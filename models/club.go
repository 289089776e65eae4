package models

import (
	"time"

	"github.com/google/uuid"
)

// Club represents a student club
type Club struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description,omitempty" db:"description"`
	LogoURL     string     `json:"logo_url,omitempty" db:"logo_url"`
	Category    string     `json:"category,omitempty" db:"category"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Club model
func (Club) TableName() string {
	return "clubs"
}

// NewClub creates a new Club instance
func NewClub(name, description, logoURL, category string, createdBy uuid.UUID) *Club {
	return &Club{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		LogoURL:     logoURL,
		Category:    category,
		CreatedBy:   &createdBy,
		CreatedAt:   time.Now().UTC(),
	}
}

// ClubPatch is a partial update: nil fields leave the stored value unchanged
type ClubPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// IsEmpty reports whether the patch contains no fields to update
func (p *ClubPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.LogoURL == nil && p.Category == nil
}

// Apply merges the patch into the club, leaving absent fields unchanged
func (p *ClubPatch) Apply(c *Club) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.LogoURL != nil {
		c.LogoURL = *p.LogoURL
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
}

// ClubAnnouncement represents an announcement posted to a club
type ClubAnnouncement struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ClubID    uuid.UUID  `json:"club_id" db:"club_id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the ClubAnnouncement model
func (ClubAnnouncement) TableName() string {
	return "club_announcements"
}

// NewClubAnnouncement creates a new ClubAnnouncement instance
func NewClubAnnouncement(clubID uuid.UUID, title, content string, createdBy uuid.UUID) *ClubAnnouncement {
	return &ClubAnnouncement{
		ID:        uuid.New(),
		ClubID:    clubID,
		Title:     title,
		Content:   content,
		CreatedBy: &createdBy,
		CreatedAt: time.Now().UTC(),
	}
}
