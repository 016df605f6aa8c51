// Package guard gates navigation on session state. Guards are pure
// functions of the current session plus their static configuration;
// they hold no state and fetch no data. A redirecting decision means
// the guarded destination must not run at all.
package guard

import "github.com/outfitly/outfitly-cli/session"

// Decision is the outcome of evaluating a guard.
type Decision int

const (
	// Allow runs the guarded destination.
	Allow Decision = iota
	// RedirectLogin sends the visitor to the login entry point.
	RedirectLogin
	// RedirectHome sends an authenticated but unauthorized visitor to
	// the neutral landing destination. There is no dedicated forbidden
	// destination; the distinct decision value keeps that a one-line
	// change.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// RequireAuth admits any authenticated session.
func RequireAuth(s session.Session) Decision {
	if !s.IsAuthenticated {
		return RedirectLogin
	}
	return Allow
}

// RequireRole admits an authenticated session whose role is in the
// allowed set. Order matters: an unauthenticated visitor goes to login,
// not to the landing destination.
func RequireRole(s session.Session, allowed ...session.Role) Decision {
	if !s.IsAuthenticated {
		return RedirectLogin
	}
	for _, role := range allowed {
		if s.Role == role {
			return Allow
		}
	}
	return RedirectHome
}
