package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/googleauth"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/repositories"
	"github.com/keerthiramGR/college-event/sessions"
	"go.uber.org/zap"
)

// TokenVerifier validates an external ID token and returns the identity it
// asserts. Satisfied by googleauth.Verifier.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*googleauth.Identity, error)
}

// LoginResult is the outcome of a successful sign-in
type LoginResult struct {
	Token string       `json:"access_token"`
	User  *models.User `json:"user"`
}

// AuthService handles sign-in, session issuance and role management
type AuthService struct {
	users    repositories.UserRepository
	verifier TokenVerifier
	codec    *sessions.Codec
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, verifier TokenVerifier, codec *sessions.Codec, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		verifier: verifier,
		codec:    codec,
		logger:   logger,
	}
}

// Login verifies a Google ID token, upserts the local account keyed by the
// Google subject and issues a session token. New accounts get the student
// role; returning users get their name and avatar refreshed.
func (s *AuthService) Login(ctx context.Context, idToken string) (*LoginResult, error) {
	if idToken == "" {
		return nil, ErrInvalidInput.WithDetail("field", "token")
	}

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, googleauth.ErrJWKSFetchFailed) {
			return nil, WrapExternal("google identity service unavailable", err)
		}
		s.logger.Warn("google token rejected", zap.Error(err))
		return nil, NewDomainError(ErrorTypeUnauthorized, "invalid google token", err)
	}

	user, err := s.users.GetByGoogleID(ctx, identity.Subject)
	switch {
	case err == nil:
		// Returning user: refresh profile fields that Google owns
		if user.Name != identity.Name || user.AvatarURL != identity.Picture {
			if err := s.users.UpdateProfile(ctx, user.ID, identity.Name, identity.Picture); err != nil {
				return nil, WrapInternal("failed to refresh user profile", err)
			}
			user.Name = identity.Name
			user.AvatarURL = identity.Picture
		}
	case errors.Is(err, repositories.ErrNotFound):
		user = models.NewUser(identity.Email, identity.Name, identity.Picture, identity.Subject)
		if err := s.users.Create(ctx, user); err != nil {
			return nil, WrapInternal("failed to create user", err)
		}
		s.logger.Info("new user signed up",
			zap.String("id", user.ID.String()),
			zap.String("email", user.Email))
	default:
		return nil, WrapInternal("failed to look up user", err)
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		return nil, WrapInternal("failed to issue session token", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to get user", err)
	}
	return user, nil
}

// MakeAdmin promotes a user to the admin role. Promoting a user who is
// already an admin is a no-op.
func (s *AuthService) MakeAdmin(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to get user", err)
	}

	if user.IsAdmin() {
		return user, nil
	}

	if err := s.users.UpdateRole(ctx, userID, models.RoleAdmin); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to update user role", err)
	}

	user.Role = models.RoleAdmin
	s.logger.Info("user promoted to admin", zap.String("id", userID.String()))
	return user, nil
}

// ListUsers retrieves users with pagination, newest first
func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, WrapInternal("failed to list users", err)
	}
	return users, nil
}
