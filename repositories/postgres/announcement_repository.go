package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/repositories"
	"go.uber.org/zap"
)

// AnnouncementRepository implements the repositories.AnnouncementRepository interface
type AnnouncementRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *DB, logger *zap.Logger) repositories.AnnouncementRepository {
	return &AnnouncementRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new announcement
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.ClubAnnouncement) error {
	query := `
		INSERT INTO club_announcements (id, club_id, title, content, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		announcement.ID,
		announcement.ClubID,
		announcement.Title,
		announcement.Content,
		announcement.CreatedBy,
		announcement.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	r.logger.Debug("announcement created",
		zap.String("id", announcement.ID.String()),
		zap.String("club_id", announcement.ClubID.String()))
	return nil
}

// ListByClub retrieves a club's announcements, newest first
func (r *AnnouncementRepository) ListByClub(ctx context.Context, clubID uuid.UUID) ([]*models.ClubAnnouncement, error) {
	query := `
		SELECT id, club_id, title, content, created_by, created_at
		FROM club_announcements
		WHERE club_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	var announcements []*models.ClubAnnouncement
	for rows.Next() {
		a := &models.ClubAnnouncement{}
		err := rows.Scan(
			&a.ID,
			&a.ClubID,
			&a.Title,
			&a.Content,
			&a.CreatedBy,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}

	return announcements, nil
}

// Delete deletes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM club_announcements WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("announcement %s: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("announcement deleted", zap.String("id", id.String()))
	return nil
}
