package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/outfitly/outfitly-cli/api"
	"github.com/outfitly/outfitly-cli/cli"
	"github.com/outfitly/outfitly-cli/internal/config"
	"github.com/outfitly/outfitly-cli/session"
	"github.com/outfitly/outfitly-cli/session/keyringsqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.New()
	logger := newLogger(cfg.GetLogLevel())

	ring, err := keyringsqlite.Open(cfg.GetDataFolder())
	if err != nil {
		return err
	}
	defer ring.Close()

	sessions, err := session.NewStore(ring, session.WithLogger(logger))
	if err != nil {
		return err
	}

	client, err := api.New(cfg.GetAPIBaseURL(), sessions,
		api.WithHTTPClient(&http.Client{Timeout: cfg.GetHTTPTimeout()}),
		api.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	app, err := cli.NewApp(cfg, sessions, client, os.Stdout, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.RootCommand().ExecuteContext(ctx)
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(parsed).
		With().Timestamp().Logger()
}
