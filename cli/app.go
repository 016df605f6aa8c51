// Package cli wires the session store, API client and domain services
// behind the cobra command tree. Commands play the role of routes:
// guarded commands evaluate their guard before any request is made.
package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/outfitly/outfitly-cli/api"
	"github.com/outfitly/outfitly-cli/auth"
	"github.com/outfitly/outfitly-cli/internal/config"
	"github.com/outfitly/outfitly-cli/items"
	"github.com/outfitly/outfitly-cli/organizations"
	"github.com/outfitly/outfitly-cli/session"
	"github.com/outfitly/outfitly-cli/tags"
)

// App holds every dependency of the command tree.
type App struct {
	config   config.Config
	sessions *session.Store
	auth     *auth.Service
	items    *items.Service
	tags     *tags.Service
	orgs     *organizations.Service
	out      io.Writer
	log      zerolog.Logger
}

// NewApp builds the application around an API client and session store.
func NewApp(cfg config.Config, sessions *session.Store, client *api.Client, out io.Writer, log zerolog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("[cli.NewApp] config is required")
	}
	if sessions == nil {
		return nil, errors.New("[cli.NewApp] session store is required")
	}
	if client == nil {
		return nil, errors.New("[cli.NewApp] api client is required")
	}
	if out == nil {
		return nil, errors.New("[cli.NewApp] output writer is required")
	}

	authService, err := auth.NewService(client, sessions)
	if err != nil {
		return nil, err
	}
	itemService, err := items.NewService(client)
	if err != nil {
		return nil, err
	}
	tagService, err := tags.NewService(client)
	if err != nil {
		return nil, err
	}
	orgService, err := organizations.NewService(client)
	if err != nil {
		return nil, err
	}

	return &App{
		config:   cfg,
		sessions: sessions,
		auth:     authService,
		items:    itemService,
		tags:     tagService,
		orgs:     orgService,
		out:      out,
		log:      log,
	}, nil
}
