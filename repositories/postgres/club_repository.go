package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/repositories"
	"go.uber.org/zap"
)

// ClubRepository implements the repositories.ClubRepository interface
type ClubRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *DB, logger *zap.Logger) repositories.ClubRepository {
	return &ClubRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new club
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO clubs (id, name, description, logo_url, category, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		club.ID,
		club.Name,
		club.Description,
		club.LogoURL,
		club.Category,
		club.CreatedBy,
		club.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create club: %w", err)
	}

	r.logger.Debug("club created", zap.String("id", club.ID.String()), zap.String("name", club.Name))
	return nil
}

// GetByID retrieves a club with its member count
func (r *ClubRepository) GetByID(ctx context.Context, id uuid.UUID) (*repositories.ClubWithStats, error) {
	query := `
		SELECT c.id, c.name, c.description, c.logo_url, c.category, c.created_by, c.created_at,
		       COUNT(m.id) AS member_count
		FROM clubs c
		LEFT JOIN club_memberships m ON m.club_id = c.id
		WHERE c.id = $1
		GROUP BY c.id
	`

	club := &repositories.ClubWithStats{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&club.ID,
		&club.Name,
		&club.Description,
		&club.LogoURL,
		&club.Category,
		&club.CreatedBy,
		&club.CreatedAt,
		&club.MemberCount,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("club %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}

	return club, nil
}

// List retrieves clubs matching the filter, newest first
func (r *ClubRepository) List(ctx context.Context, filter repositories.ClubFilter) ([]*repositories.ClubWithStats, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("c.name ILIKE $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.description, c.logo_url, c.category, c.created_by, c.created_at,
		       COUNT(m.id) AS member_count
		FROM clubs c
		LEFT JOIN club_memberships m ON m.club_id = c.id
		%s
		GROUP BY c.id
		ORDER BY c.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, limitPos, offsetPos)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}
	defer rows.Close()

	var clubs []*repositories.ClubWithStats
	for rows.Next() {
		club := &repositories.ClubWithStats{}
		err := rows.Scan(
			&club.ID,
			&club.Name,
			&club.Description,
			&club.LogoURL,
			&club.Category,
			&club.CreatedBy,
			&club.CreatedAt,
			&club.MemberCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, club)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating club rows: %w", err)
	}

	return clubs, nil
}

// Update persists the full club row
func (r *ClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `
		UPDATE clubs
		SET name = $2,
		    description = $3,
		    logo_url = $4,
		    category = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		club.ID,
		club.Name,
		club.Description,
		club.LogoURL,
		club.Category,
	)

	if err != nil {
		return fmt.Errorf("failed to update club: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("club %s: %w", club.ID, repositories.ErrNotFound)
	}

	r.logger.Debug("club updated", zap.String("id", club.ID.String()))
	return nil
}

// Delete removes a club's memberships, then its announcements, then the club
// itself. The statements run sequentially without a transaction; a failure
// partway leaves the club with whatever dependent rows were not yet removed.
func (r *ClubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM club_memberships WHERE club_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete club memberships: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM club_announcements WHERE club_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete club announcements: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete club: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("club %s: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("club deleted", zap.String("id", id.String()))
	return nil
}
