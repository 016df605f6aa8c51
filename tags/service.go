// Package tags is the client for the tag catalog endpoints, used by
// organization accounts to curate outfit tags.
package tags

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/outfitly/outfitly-cli/api"
)

// DefaultColor is the backend's fallback swatch for tags created
// without an explicit color.
const DefaultColor = "#3B82F6"

// Tag is one entry of an organization's tag catalog.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	OutfitCount int    `json:"count"`
}

// Draft is the create/update payload for a tag.
type Draft struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Service shapes requests to the /tags endpoints.
type Service struct {
	api *api.Client
}

// NewService initializes the tags service.
func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[tags.NewService] api client is required")
	}
	return &Service{api: client}, nil
}

// List fetches the full tag catalog.
func (s *Service) List(ctx context.Context) ([]Tag, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/tags/get-tags", nil, &raw); err != nil {
		return nil, err
	}
	return api.ParseList[Tag](raw, "tags")
}

// Create adds a tag. An empty color falls back to DefaultColor.
func (s *Service) Create(ctx context.Context, draft Draft) (*Tag, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, errors.New("[tags.Create] name is required")
	}
	if draft.Color == "" {
		draft.Color = DefaultColor
	}
	var raw json.RawMessage
	if err := s.api.Post(ctx, "/tags/create-tag", draft, &raw); err != nil {
		return nil, err
	}
	return api.ParseObject[Tag](raw)
}

// Update replaces a tag's name and color.
func (s *Service) Update(ctx context.Context, tagID string, draft Draft) (*Tag, error) {
	var raw json.RawMessage
	if err := s.api.Put(ctx, "/tags/update-tag/"+tagID, draft, &raw); err != nil {
		return nil, err
	}
	return api.ParseObject[Tag](raw)
}

// Delete removes a tag from the catalog.
func (s *Service) Delete(ctx context.Context, tagID string) error {
	return s.api.Delete(ctx, "/tags/delete-tag/"+tagID, nil)
}
