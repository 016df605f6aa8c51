// Package auth shapes requests to the authentication endpoints and
// commits issued tokens to the session store.
package auth

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/outfitly/outfitly-cli/api"
)

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration mirrors the sign-up form. Organization sign-ups carry
// the organization name as well.
type Registration struct {
	Name             string `json:"name,omitempty"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organizationName,omitempty"`
}

// SessionStore is the slice of the session store the service mutates.
type SessionStore interface {
	Login(accessToken, refreshToken string) error
	Logout() error
}

// Service calls the auth endpoints. Every token-bearing response goes
// through the same parse-and-commit path, so a registration that
// auto-logs-in behaves exactly like a login.
type Service struct {
	api      *api.Client
	sessions SessionStore
}

// NewService initializes the auth service with its dependencies.
func NewService(client *api.Client, sessions SessionStore) (*Service, error) {
	if client == nil {
		return nil, errors.New("[auth.NewService] api client is required")
	}
	if sessions == nil {
		return nil, errors.New("[auth.NewService] session store is required")
	}
	return &Service{api: client, sessions: sessions}, nil
}

// Login authenticates a regular account.
func (s *Service) Login(ctx context.Context, creds Credentials) error {
	return s.authenticate(ctx, "/auth/login", creds)
}

// AdminLogin authenticates through the admin endpoint.
func (s *Service) AdminLogin(ctx context.Context, creds Credentials) error {
	return s.authenticate(ctx, "/auth/admin-login", creds)
}

// Register creates a user account. The backend auto-logs the new
// account in by answering with a token pair.
func (s *Service) Register(ctx context.Context, reg Registration) error {
	return s.authenticate(ctx, "/auth/register", reg)
}

// RegisterOrganization creates an organization account.
func (s *Service) RegisterOrganization(ctx context.Context, reg Registration) error {
	return s.authenticate(ctx, "/auth/register-organization", reg)
}

// Logout is local only; the backend holds no session to tear down.
func (s *Service) Logout() error {
	return s.sessions.Logout()
}

func (s *Service) authenticate(ctx context.Context, path string, payload any) error {
	var raw json.RawMessage
	if err := s.api.Post(ctx, path, payload, &raw); err != nil {
		return err
	}
	tokens, err := api.ParseTokenResponse(raw)
	if err != nil {
		return errors.Wrapf(err, "auth %s", path)
	}
	return s.sessions.Login(tokens.AccessToken, tokens.RefreshToken)
}
