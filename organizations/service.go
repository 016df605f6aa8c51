// Package organizations is the client for organization administration,
// reachable only by admin sessions.
package organizations

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/outfitly/outfitly-cli/api"
)

// Organization is a catalog-owning account.
type Organization struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Draft is the create payload for an organization.
type Draft struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Service shapes requests to the /organizations endpoints.
type Service struct {
	api *api.Client
}

// NewService initializes the organizations service.
func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[organizations.NewService] api client is required")
	}
	return &Service{api: client}, nil
}

// List fetches every organization.
func (s *Service) List(ctx context.Context) ([]Organization, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/organizations/get-all-organizations", nil, &raw); err != nil {
		return nil, err
	}
	return api.ParseList[Organization](raw, "organizations")
}

// Create adds an organization.
func (s *Service) Create(ctx context.Context, draft Draft) (*Organization, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, errors.New("[organizations.Create] name is required")
	}
	var raw json.RawMessage
	if err := s.api.Post(ctx, "/organizations/create-organization", draft, &raw); err != nil {
		return nil, err
	}
	return api.ParseObject[Organization](raw)
}
