package cli

import (
	"github.com/pkg/errors"

	"github.com/outfitly/outfitly-cli/guard"
	"github.com/outfitly/outfitly-cli/session"
)

// Sentinel errors standing in for the SPA's guard redirects.
var (
	ErrLoginRequired = errors.New("not logged in: run `outfitly login` first")
	ErrWrongRole     = errors.New("this command is not available for your account role")
)

// guardErr maps a guard decision onto the CLI equivalent of a route
// redirect. A non-nil result aborts the command before it runs.
func guardErr(decision guard.Decision) error {
	switch decision {
	case guard.Allow:
		return nil
	case guard.RedirectLogin:
		return ErrLoginRequired
	default:
		return ErrWrongRole
	}
}

func (a *App) requireAuth() error {
	return guardErr(guard.RequireAuth(a.sessions.State()))
}

func (a *App) requireRole(allowed ...session.Role) error {
	return guardErr(guard.RequireRole(a.sessions.State(), allowed...))
}
