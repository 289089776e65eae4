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

// EventRepository implements the repositories.EventRepository interface
type EventRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *DB, logger *zap.Logger) repositories.EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, title, description, category, event_date, venue, poster_url, status, max_participants, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.EventDate,
		event.Venue,
		event.PosterURL,
		event.Status,
		event.MaxParticipants,
		event.CreatedBy,
		event.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	r.logger.Debug("event created", zap.String("id", event.ID.String()), zap.String("title", event.Title))
	return nil
}

// GetByID retrieves an event with its registration count
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*repositories.EventWithStats, error) {
	query := `
		SELECT e.id, e.title, e.description, e.category, e.event_date, e.venue, e.poster_url,
		       e.status, e.max_participants, e.created_by, e.created_at,
		       COUNT(r.id) AS registration_count
		FROM events e
		LEFT JOIN event_registrations r ON r.event_id = e.id
		WHERE e.id = $1
		GROUP BY e.id
	`

	event := &repositories.EventWithStats{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Category,
		&event.EventDate,
		&event.Venue,
		&event.PosterURL,
		&event.Status,
		&event.MaxParticipants,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.RegistrationCount,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("event %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// List retrieves events matching the filter, soonest event date first
func (r *EventRepository) List(ctx context.Context, filter repositories.EventFilter) ([]*repositories.EventWithStats, error) {
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("e.category = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("e.title ILIKE $%d", len(args)))
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
		SELECT e.id, e.title, e.description, e.category, e.event_date, e.venue, e.poster_url,
		       e.status, e.max_participants, e.created_by, e.created_at,
		       COUNT(r.id) AS registration_count
		FROM events e
		LEFT JOIN event_registrations r ON r.event_id = e.id
		%s
		GROUP BY e.id
		ORDER BY e.event_date ASC
		LIMIT $%d OFFSET $%d
	`, where, limitPos, offsetPos)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*repositories.EventWithStats
	for rows.Next() {
		event := &repositories.EventWithStats{}
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Category,
			&event.EventDate,
			&event.Venue,
			&event.PosterURL,
			&event.Status,
			&event.MaxParticipants,
			&event.CreatedBy,
			&event.CreatedAt,
			&event.RegistrationCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// Update persists the full event row
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET title = $2,
		    description = $3,
		    category = $4,
		    event_date = $5,
		    venue = $6,
		    poster_url = $7,
		    status = $8,
		    max_participants = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.EventDate,
		event.Venue,
		event.PosterURL,
		event.Status,
		event.MaxParticipants,
	)

	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("event %s: %w", event.ID, repositories.ErrNotFound)
	}

	r.logger.Debug("event updated", zap.String("id", event.ID.String()))
	return nil
}

// Delete removes an event's registrations and then the event itself. The two
// statements run sequentially without a transaction; a failure after the first
// leaves the event in place with its registrations already gone.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM event_registrations WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event registrations: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("event %s: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("event deleted", zap.String("id", id.String()))
	return nil
}
