// Package items is the client for the outfit CRUD endpoints.
package items

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/outfitly/outfitly-cli/api"
)

// Service shapes requests to the /items endpoints.
type Service struct {
	api *api.Client
}

// NewService initializes the items service.
func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[items.NewService] api client is required")
	}
	return &Service{api: client}, nil
}

// List fetches outfits, optionally filtered, sorted and paginated.
func (s *Service) List(ctx context.Context, params ListParams) ([]Item, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/items/get-items", params.values(), &raw); err != nil {
		return nil, err
	}
	return api.ParseList[Item](raw, "items")
}

// Get fetches one outfit by ID.
func (s *Service) Get(ctx context.Context, itemID string) (*Item, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/items/get-item/"+itemID, nil, &raw); err != nil {
		return nil, err
	}
	return api.ParseObject[Item](raw)
}

// Create adds a new outfit. The name is the only required field.
func (s *Service) Create(ctx context.Context, draft Draft) (*Item, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, errors.New("[items.Create] name is required")
	}
	var raw json.RawMessage
	if err := s.api.Post(ctx, "/items/add-item", draft, &raw); err != nil {
		return nil, err
	}
	return api.ParseObject[Item](raw)
}

// Update replaces an outfit's fields.
func (s *Service) Update(ctx context.Context, itemID string, draft Draft) (*Item, error) {
	var raw json.RawMessage
	if err := s.api.Put(ctx, "/items/update-item/"+itemID, draft, &raw); err != nil {
		return nil, err
	}
	return api.ParseObject[Item](raw)
}

// Delete removes an outfit.
func (s *Service) Delete(ctx context.Context, itemID string) error {
	return s.api.Delete(ctx, "/items/delete-item/"+itemID, nil)
}

// AddPhoto uploads one photo for an outfit as multipart form data.
// Callers are expected to respect MaxPhotos; the backend enforces it
// too.
func (s *Service) AddPhoto(ctx context.Context, itemID, fileName string, photo io.Reader) (*Item, error) {
	form := api.NewMultipartForm()
	if err := form.WriteField("itemId", itemID); err != nil {
		return nil, err
	}
	if err := form.WriteFile("photo", fileName, photo); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := s.api.PostMultipart(ctx, "/items/add-item-photo", form, &raw); err != nil {
		return nil, err
	}
	return api.ParseObject[Item](raw)
}

// DeletePhoto removes one photo from an outfit.
func (s *Service) DeletePhoto(ctx context.Context, itemID, photoID string) error {
	return s.api.Delete(ctx, "/items/delete-item-photo/"+itemID+"/"+photoID, nil)
}
