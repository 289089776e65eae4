package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/keerthiramGR/college-event/config"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := cfg.DSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	// Check if we can query
	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// Stats returns database connection pool statistics
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}

// InitSchema initializes the database schema
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
		-- Users table
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			avatar_url TEXT,
			google_id VARCHAR(255) NOT NULL UNIQUE,
			role VARCHAR(50) NOT NULL DEFAULT 'student',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Events table
		CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			category VARCHAR(50) NOT NULL,
			event_date TIMESTAMP NOT NULL,
			venue VARCHAR(255) NOT NULL,
			poster_url TEXT,
			status VARCHAR(50) NOT NULL DEFAULT 'upcoming',
			max_participants INTEGER,
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Clubs table
		CREATE TABLE IF NOT EXISTS clubs (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			logo_url TEXT,
			category VARCHAR(100),
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Event registrations table. The UNIQUE pair closes the duplicate
		-- registration race at the database level. Dependent rows are
		-- removed by the repositories with ordered deletes, not cascades.
		CREATE TABLE IF NOT EXISTS event_registrations (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			event_id UUID NOT NULL REFERENCES events(id),
			registered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, event_id)
		);

		-- Club memberships table
		CREATE TABLE IF NOT EXISTS club_memberships (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			club_id UUID NOT NULL REFERENCES clubs(id),
			joined_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, club_id)
		);

		-- Club announcements table
		CREATE TABLE IF NOT EXISTS club_announcements (
			id UUID PRIMARY KEY,
			club_id UUID NOT NULL REFERENCES clubs(id),
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Indexes for performance
		CREATE INDEX IF NOT EXISTS idx_users_google_id ON users(google_id);
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

		CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
		CREATE INDEX IF NOT EXISTS idx_events_status ON events(status);
		CREATE INDEX IF NOT EXISTS idx_events_event_date ON events(event_date);

		CREATE INDEX IF NOT EXISTS idx_clubs_category ON clubs(category);

		CREATE INDEX IF NOT EXISTS idx_event_registrations_user_id ON event_registrations(user_id);
		CREATE INDEX IF NOT EXISTS idx_event_registrations_event_id ON event_registrations(event_id);

		CREATE INDEX IF NOT EXISTS idx_club_memberships_user_id ON club_memberships(user_id);
		CREATE INDEX IF NOT EXISTS idx_club_memberships_club_id ON club_memberships(club_id);

		CREATE INDEX IF NOT EXISTS idx_club_announcements_club_id ON club_announcements(club_id);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized successfully")
	return nil
}
