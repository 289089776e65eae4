package handlers

import (
	"net/http"

	"github.com/keerthiramGR/college-event/middleware"
	"github.com/keerthiramGR/college-event/services"
	"github.com/keerthiramGR/college-event/utils"
	"go.uber.org/zap"
)

// GoogleLoginRequest is the request body for POST /api/auth/google-login
type GoogleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginResponse is the response body for a successful sign-in
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        interface{} `json:"user"`
}

// AuthHandler handles authentication and account HTTP requests
type AuthHandler struct {
	auth   *services.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// HandleGoogleLogin handles POST /api/auth/google-login
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req GoogleLoginRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	result, err := h.auth.Login(r.Context(), req.Token)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		User:        result.User,
	})
}

// HandleMe handles GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Data: user})
}

// HandleLogout handles POST /api/auth/logout. Tokens are stateless, so this
// only confirms; clients drop the token themselves.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// HandleMakeAdmin handles PUT /api/auth/make-admin/{user_id}
func (h *AuthHandler) HandleMakeAdmin(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "user_id")
	if !ok {
		return
	}

	user, err := h.auth.MakeAdmin(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: user})
}

// HandleListUsers handles GET /api/registrations/admin/all-users
func (h *AuthHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Data: users})
}
