package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/repositories"
	"go.uber.org/zap"
)

// MembershipRepository implements the repositories.MembershipRepository interface
type MembershipRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *DB, logger *zap.Logger) repositories.MembershipRepository {
	return &MembershipRepository{
		db:     db,
		logger: logger,
	}
}

// Join inserts the membership unless the user is already a member. The
// UNIQUE(user_id, club_id) constraint absorbs duplicate attempts.
func (r *MembershipRepository) Join(ctx context.Context, membership *models.ClubMembership) (bool, error) {
	query := `
		INSERT INTO club_memberships (id, user_id, club_id, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, club_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		membership.ID,
		membership.UserID,
		membership.ClubID,
		membership.JoinedAt,
	)

	if err != nil {
		return false, fmt.Errorf("failed to join club: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return false, nil
	}

	r.logger.Debug("membership created",
		zap.String("user_id", membership.UserID.String()),
		zap.String("club_id", membership.ClubID.String()))
	return true, nil
}

// Exists reports whether the user is a member of the club
func (r *MembershipRepository) Exists(ctx context.Context, userID, clubID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM club_memberships WHERE user_id = $1 AND club_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, clubID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return exists, nil
}

// ListByUser retrieves a user's memberships with club details, newest first
func (r *MembershipRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*repositories.MembershipWithClub, error) {
	query := `
		SELECT m.id, m.user_id, m.club_id, m.joined_at,
		       c.id, c.name, c.description, c.logo_url, c.category, c.created_by, c.created_at
		FROM club_memberships m
		JOIN clubs c ON c.id = m.club_id
		WHERE m.user_id = $1
		ORDER BY m.joined_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*repositories.MembershipWithClub
	for rows.Next() {
		m := &repositories.MembershipWithClub{}
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.ClubID,
			&m.JoinedAt,
			&m.Club.ID,
			&m.Club.Name,
			&m.Club.Description,
			&m.Club.LogoURL,
			&m.Club.Category,
			&m.Club.CreatedBy,
			&m.Club.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}

	return memberships, nil
}

// ListByClub retrieves a club's memberships with user details
func (r *MembershipRepository) ListByClub(ctx context.Context, clubID uuid.UUID) ([]*repositories.MembershipWithUser, error) {
	query := `
		SELECT m.id, m.user_id, m.club_id, m.joined_at,
		       u.id, u.email, u.name, u.avatar_url, u.google_id, u.role, u.created_at
		FROM club_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.club_id = $1
		ORDER BY m.joined_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*repositories.MembershipWithUser
	for rows.Next() {
		m := &repositories.MembershipWithUser{}
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.ClubID,
			&m.JoinedAt,
			&m.User.ID,
			&m.User.Email,
			&m.User.Name,
			&m.User.AvatarURL,
			&m.User.GoogleID,
			&m.User.Role,
			&m.User.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}

	return memberships, nil
}

// Delete removes a user's membership in a club
func (r *MembershipRepository) Delete(ctx context.Context, userID, clubID uuid.UUID) error {
	query := `DELETE FROM club_memberships WHERE user_id = $1 AND club_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, clubID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("membership: %w", repositories.ErrNotFound)
	}

	r.logger.Debug("membership deleted",
		zap.String("user_id", userID.String()),
		zap.String("club_id", clubID.String()))
	return nil
}
