package app

import (
	"context"
	"fmt"
	"time"

	"github.com/keerthiramGR/college-event/config"
	"github.com/keerthiramGR/college-event/googleauth"
	"github.com/keerthiramGR/college-event/handlers"
	"github.com/keerthiramGR/college-event/middleware"
	"github.com/keerthiramGR/college-event/repositories"
	"github.com/keerthiramGR/college-event/repositories/postgres"
	"github.com/keerthiramGR/college-event/services"
	"github.com/keerthiramGR/college-event/sessions"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users         repositories.UserRepository
	Events        repositories.EventRepository
	Clubs         repositories.ClubRepository
	Registrations repositories.RegistrationRepository
	Memberships   repositories.MembershipRepository
	Announcements repositories.AnnouncementRepository

	// Services
	AuthService         *services.AuthService
	EventService        *services.EventService
	ClubService         *services.ClubService
	RegistrationService *services.RegistrationService

	// Auth
	SessionCodec   *sessions.Codec
	AuthMiddleware *middleware.AuthMiddleware

	// Handlers
	AuthHandler         *handlers.AuthHandler
	EventHandler        *handlers.EventHandler
	ClubHandler         *handlers.ClubHandler
	RegistrationHandler *handlers.RegistrationHandler
	HealthHandler       *handlers.HealthHandler
}

// StoreConfigured reports whether a database connection is available. When
// false the API runs in a degraded mode where data routes are rejected.
func (d *Dependencies) StoreConfigured() bool {
	return d.DB != nil
}

// NewDependencies creates and wires up all application dependencies. A missing
// database configuration is not fatal; the API boots degraded so that health
// probes and the service banner keep working.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initAuth(cfg)
	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL connection, factory and repositories
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	if !cfg.Database.Configured() {
		d.Logger.Warn("database not configured, data endpoints disabled")
		return nil
	}

	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if err := d.DB.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	repos := factory.NewRepositories()
	d.Users = repos.Users
	d.Events = repos.Events
	d.Clubs = repos.Clubs
	d.Registrations = repos.Registrations
	d.Memberships = repos.Memberships
	d.Announcements = repos.Announcements

	d.Logger.Info("repositories initialized")
	return nil
}

func (d *Dependencies) initAuth(cfg *config.Config) {
	d.SessionCodec = sessions.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.SessionCodec, d.Users, d.Logger)
}

func (d *Dependencies) initServices() {
	var verifier services.TokenVerifier
	if d.Config.Google.ClientID == "" {
		d.Logger.Warn("google client ID not configured, sign-in disabled")
		verifier = &rejectAllVerifier{}
	} else {
		verifier = googleauth.NewVerifier(googleauth.Config{
			ClientID:    d.Config.Google.ClientID,
			CacheTTL:    time.Hour,
			HTTPTimeout: 10 * time.Second,
		})
	}

	d.AuthService = services.NewAuthService(d.Users, verifier, d.SessionCodec, d.Logger)
	d.EventService = services.NewEventService(d.Events, d.Logger)
	d.ClubService = services.NewClubService(d.Clubs, d.Memberships, d.Announcements, d.Logger)
	d.RegistrationService = services.NewRegistrationService(d.Events, d.Clubs, d.Registrations, d.Memberships, d.Logger)

	d.Logger.Info("services initialized")
}

func (d *Dependencies) initHandlers() {
	d.AuthHandler = handlers.NewAuthHandler(d.AuthService, d.Logger)
	d.EventHandler = handlers.NewEventHandler(d.EventService, d.Logger)
	d.ClubHandler = handlers.NewClubHandler(d.ClubService, d.Logger)
	d.RegistrationHandler = handlers.NewRegistrationHandler(d.RegistrationService, d.Logger)

	if d.DB != nil {
		d.HealthHandler = handlers.NewHealthHandler(d.DB.DB, d.Logger)
	} else {
		d.HealthHandler = handlers.NewHealthHandler(nil, d.Logger)
	}
}

// rejectAllVerifier fails every sign-in (used when Google is not configured)
type rejectAllVerifier struct{}

func (*rejectAllVerifier) Verify(context.Context, string) (*googleauth.Identity, error) {
	return nil, fmt.Errorf("google sign-in not configured")
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
