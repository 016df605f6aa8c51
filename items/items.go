package items

import (
	"net/url"
	"strconv"
)

// MaxPhotos caps the photos attached to one outfit.
const MaxPhotos = 5

// Item is an outfit combination.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Photos      []Photo  `json:"photos"`
	Owner       string   `json:"owner,omitempty"`
}

// Photo is one image attached to an outfit.
type Photo struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Draft is the create/update payload for an outfit.
type Draft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ListParams are the optional query parameters of the list endpoint.
type ListParams struct {
	Search string
	Sort   string
	Page   int
	Limit  int
}

func (p ListParams) values() url.Values {
	query := url.Values{}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	if p.Sort != "" {
		query.Set("sort", p.Sort)
	}
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
	}
	return query
}
