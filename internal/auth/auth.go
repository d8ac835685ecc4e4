// Package auth implements the session service: login, logout, password
// flows, and bearer-token persistence.
package auth

import (
	"context"
	"fmt"
	"strconv"

	"github.com/timelex/timelex-cli/internal/api"
	"github.com/timelex/timelex-cli/internal/logger"
	"github.com/timelex/timelex-cli/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	ClientID *int64 `json:"client_id"`
}

type Service struct {
	api   *api.Client
	token string
}

func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// SetClient installs the API client after construction. The client's token
// source points back at this service, so the two are wired in two steps.
func (s *Service) SetClient(client *api.Client) {
	s.api = client
}

// Token returns the in-memory session token, falling back to the keyring
// once. Empty when logged out.
func (s *Service) Token() string {
	if s.token == "" {
		tok, err := LoadToken()
		if err == nil {
			s.token = tok
		}
	}
	return s.token
}

// IsAuthenticated reports whether a token is present. Token validity is
// only established by the first authenticated request.
func (s *Service) IsAuthenticated() bool {
	return s.Token() != ""
}

// Login exchanges credentials for a token and persists it. The returned
// session carries the backend-assigned role; ClientID is set only for
// client-role logins.
func (s *Service) Login(ctx context.Context, email, password string) (models.UserSession, error) {
	var resp loginResponse
	err := s.api.Post(ctx, "/login/", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return models.UserSession{}, fmt.Errorf("login failed: %w", err)
	}

	s.token = resp.Token
	if err := StoreToken(resp.Token); err != nil {
		// A session without persistence still works for this process.
		logger.Warn("Failed to persist session token", "error", err)
	}

	session := models.UserSession{
		Role: models.Role(resp.Role),
		Name: resp.Username,
	}
	if session.Role == models.RoleClient && resp.ClientID != nil {
		session.ClientID = strconv.FormatInt(*resp.ClientID, 10)
	}
	logger.Info("Logged in", "role", resp.Role, "user", resp.Username)
	return session, nil
}

// RestoreSession rebuilds a session from a persisted token. The backend has
// no profile endpoint, so a restored session is assumed to be admin.
func (s *Service) RestoreSession() (models.UserSession, bool) {
	if !s.IsAuthenticated() {
		return models.UserSession{}, false
	}
	return models.UserSession{Role: models.RoleAdmin, Name: "Admin"}, true
}

// Logout discards the in-memory token and removes the persisted one.
func (s *Service) Logout() {
	s.token = ""
	if err := DeleteToken(); err != nil && err != ErrNoToken {
		logger.Warn("Failed to remove persisted token", "error", err)
	}
	logger.Info("Logged out")
}

// ResetPassword asks the backend to send a reset email.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	err := s.api.Post(ctx, "/reset-password/", map[string]string{"email": email}, nil)
	if err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}
	return nil
}

// ChangePassword rotates the current user's password.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	if err := s.api.Post(ctx, "/change-password/", body, nil); err != nil {
		return fmt.Errorf("password change failed: %w", err)
	}
	return nil
}
