package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/repositories"
	"go.uber.org/zap"
)

// RegistrationRepository implements the repositories.RegistrationRepository interface
type RegistrationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *DB, logger *zap.Logger) repositories.RegistrationRepository {
	return &RegistrationRepository{
		db:     db,
		logger: logger,
	}
}

// Register inserts the registration unless the event is at capacity or the user
// is already registered. The capacity check and the insert run as a single
// statement so concurrent registrations cannot overshoot the limit, and the
// UNIQUE(user_id, event_id) constraint absorbs duplicate attempts.
func (r *RegistrationRepository) Register(ctx context.Context, reg *models.EventRegistration, maxParticipants *int) (bool, error) {
	query := `
		INSERT INTO event_registrations (id, user_id, event_id, registered_at)
		SELECT $1, $2, $3, $4
		WHERE $5::INTEGER IS NULL
		   OR (SELECT COUNT(*) FROM event_registrations WHERE event_id = $3) < $5
		ON CONFLICT (user_id, event_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		reg.ID,
		reg.UserID,
		reg.EventID,
		reg.RegisteredAt,
		maxParticipants,
	)

	if err != nil {
		return false, fmt.Errorf("failed to register for event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return false, nil
	}

	r.logger.Debug("registration created",
		zap.String("user_id", reg.UserID.String()),
		zap.String("event_id", reg.EventID.String()))
	return true, nil
}

// Exists reports whether the user is registered for the event
func (r *RegistrationRepository) Exists(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM event_registrations WHERE user_id = $1 AND event_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, eventID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}

	return exists, nil
}

// ListByUser retrieves a user's registrations with event details, newest first
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*repositories.RegistrationWithEvent, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.registered_at,
		       e.id, e.title, e.description, e.category, e.event_date, e.venue, e.poster_url,
		       e.status, e.max_participants, e.created_by, e.created_at
		FROM event_registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY r.registered_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var registrations []*repositories.RegistrationWithEvent
	for rows.Next() {
		reg := &repositories.RegistrationWithEvent{}
		err := rows.Scan(
			&reg.ID,
			&reg.UserID,
			&reg.EventID,
			&reg.RegisteredAt,
			&reg.Event.ID,
			&reg.Event.Title,
			&reg.Event.Description,
			&reg.Event.Category,
			&reg.Event.EventDate,
			&reg.Event.Venue,
			&reg.Event.PosterURL,
			&reg.Event.Status,
			&reg.Event.MaxParticipants,
			&reg.Event.CreatedBy,
			&reg.Event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		registrations = append(registrations, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}

	return registrations, nil
}

// ListByEvent retrieves an event's registrations with user details
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*repositories.RegistrationWithUser, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.registered_at,
		       u.id, u.email, u.name, u.avatar_url, u.google_id, u.role, u.created_at
		FROM event_registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.registered_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var registrations []*repositories.RegistrationWithUser
	for rows.Next() {
		reg := &repositories.RegistrationWithUser{}
		err := rows.Scan(
			&reg.ID,
			&reg.UserID,
			&reg.EventID,
			&reg.RegisteredAt,
			&reg.User.ID,
			&reg.User.Email,
			&reg.User.Name,
			&reg.User.AvatarURL,
			&reg.User.GoogleID,
			&reg.User.Role,
			&reg.User.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		registrations = append(registrations, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}

	return registrations, nil
}

// Delete removes a user's registration for an event
func (r *RegistrationRepository) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	query := `DELETE FROM event_registrations WHERE user_id = $1 AND event_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("registration: %w", repositories.ErrNotFound)
	}

	r.logger.Debug("registration deleted",
		zap.String("user_id", userID.String()),
		zap.String("event_id", eventID.String()))
	return nil
}
