package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/repositories"
	"go.uber.org/zap"
)

// CreateClubInput carries the fields for creating a club
type CreateClubInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Category    string `json:"category" validate:"max=100"`
}

// CreateAnnouncementInput carries the fields for posting a club announcement
type CreateAnnouncementInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// ClubService handles club, membership roster and announcement operations
type ClubService struct {
	clubs         repositories.ClubRepository
	memberships   repositories.MembershipRepository
	announcements repositories.AnnouncementRepository
	logger        *zap.Logger
}

// NewClubService creates a new club service
func NewClubService(
	clubs repositories.ClubRepository,
	memberships repositories.MembershipRepository,
	announcements repositories.AnnouncementRepository,
	logger *zap.Logger,
) *ClubService {
	return &ClubService{
		clubs:         clubs,
		memberships:   memberships,
		announcements: announcements,
		logger:        logger,
	}
}

// CreateClub creates a new club
func (s *ClubService) CreateClub(ctx context.Context, input CreateClubInput, createdBy uuid.UUID) (*repositories.ClubWithStats, error) {
	club := models.NewClub(input.Name, input.Description, input.LogoURL, input.Category, createdBy)

	if err := s.clubs.Create(ctx, club); err != nil {
		return nil, WrapInternal("failed to create club", err)
	}

	s.logger.Info("club created",
		zap.String("id", club.ID.String()),
		zap.String("name", club.Name))

	return &repositories.ClubWithStats{Club: *club}, nil
}

// GetClub retrieves a club with its member count
func (s *ClubService) GetClub(ctx context.Context, id uuid.UUID) (*repositories.ClubWithStats, error) {
	club, err := s.clubs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, WrapInternal("failed to get club", err)
	}
	return club, nil
}

// ListClubs retrieves clubs matching the optional name search, newest first
func (s *ClubService) ListClubs(ctx context.Context, search string, limit, offset int) ([]*repositories.ClubWithStats, error) {
	if offset < 0 {
		offset = 0
	}
	filter := repositories.ClubFilter{
		Search: search,
		Limit:  clampLimit(limit),
		Offset: offset,
	}

	clubs, err := s.clubs.List(ctx, filter)
	if err != nil {
		return nil, WrapInternal("failed to list clubs", err)
	}
	return clubs, nil
}

// UpdateClub applies a partial update to a club
func (s *ClubService) UpdateClub(ctx context.Context, id uuid.UUID, patch models.ClubPatch) (*repositories.ClubWithStats, error) {
	if patch.IsEmpty() {
		return nil, ErrInvalidInput.WithDetail("reason", "no fields to update")
	}

	current, err := s.clubs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, WrapInternal("failed to get club", err)
	}

	updated := current.Club
	patch.Apply(&updated)

	if err := s.clubs.Update(ctx, &updated); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, WrapInternal("failed to update club", err)
	}

	s.logger.Info("club updated", zap.String("id", id.String()))
	return &repositories.ClubWithStats{Club: updated, MemberCount: current.MemberCount}, nil
}

// DeleteClub deletes a club along with its memberships and announcements
func (s *ClubService) DeleteClub(ctx context.Context, id uuid.UUID) error {
	if err := s.clubs.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClubNotFound
		}
		return WrapInternal("failed to delete club", err)
	}

	s.logger.Info("club deleted", zap.String("id", id.String()))
	return nil
}

// ListMembers retrieves a club's members with user details
func (s *ClubService) ListMembers(ctx context.Context, clubID uuid.UUID) ([]*repositories.MembershipWithUser, error) {
	if _, err := s.GetClub(ctx, clubID); err != nil {
		return nil, err
	}

	members, err := s.memberships.ListByClub(ctx, clubID)
	if err != nil {
		return nil, WrapInternal("failed to list members", err)
	}
	return members, nil
}

// CreateAnnouncement posts an announcement to a club
func (s *ClubService) CreateAnnouncement(ctx context.Context, clubID uuid.UUID, input CreateAnnouncementInput, createdBy uuid.UUID) (*models.ClubAnnouncement, error) {
	if _, err := s.GetClub(ctx, clubID); err != nil {
		return nil, err
	}

	announcement := models.NewClubAnnouncement(clubID, input.Title, input.Content, createdBy)
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, WrapInternal("failed to create announcement", err)
	}

	s.logger.Info("announcement created",
		zap.String("id", announcement.ID.String()),
		zap.String("club_id", clubID.String()))

	return announcement, nil
}

// ListAnnouncements retrieves a club's announcements, newest first
func (s *ClubService) ListAnnouncements(ctx context.Context, clubID uuid.UUID) ([]*models.ClubAnnouncement, error) {
	if _, err := s.GetClub(ctx, clubID); err != nil {
		return nil, err
	}

	announcements, err := s.announcements.ListByClub(ctx, clubID)
	if err != nil {
		return nil, WrapInternal("failed to list announcements", err)
	}
	return announcements, nil
}

// DeleteAnnouncement deletes an announcement
func (s *ClubService) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	if err := s.announcements.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAnnouncementNotFound
		}
		return WrapInternal("failed to delete announcement", err)
	}

	s.logger.Info("announcement deleted", zap.String("id", id.String()))
	return nil
}
