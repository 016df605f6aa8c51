package session

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Store is the single source of truth for authentication state and the
// persistence boundary to the keyring. Login and Logout are the only
// mutations; both replace the session wholesale under the lock, so the
// "atomic whole-object replace" invariant survives a multi-threaded
// host.
type Store struct {
	lock sync.RWMutex
	cur  Session
	ring Keyring
	log  zerolog.Logger
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithLogger sets the logger used for session transitions.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore hydrates the session from the keyring. A persisted token
// pair survives process restarts; the role is re-derived from the
// stored access token rather than persisted.
func NewStore(ring Keyring, options ...StoreOption) (*Store, error) {
	if ring == nil {
		return nil, errors.New("[NewStore] keyring is required")
	}

	store := &Store{ring: ring, log: zerolog.Nop()}
	for _, opt := range options {
		opt(store)
	}

	if err := store.hydrate(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) hydrate() error {
	accessToken, haveAccess, err := s.ring.Get(AccessTokenKey)
	if err != nil {
		return errors.Wrap(err, "hydrate get accessToken")
	}
	refreshToken, haveRefresh, err := s.ring.Get(RefreshTokenKey)
	if err != nil {
		return errors.Wrap(err, "hydrate get refreshToken")
	}

	if !haveAccess || !haveRefresh {
		if haveAccess || haveRefresh {
			// One token without its counterpart is not a valid state;
			// clear the leftover and start logged out.
			_ = s.ring.Delete(AccessTokenKey)
			_ = s.ring.Delete(RefreshTokenKey)
		}
		return nil
	}

	s.cur = sessionFor(accessToken, refreshToken)
	s.log.Debug().Str("role", string(s.cur.Role)).Msg("session restored from keyring")
	return nil
}

// sessionFor derives the full session for a token pair. A token that
// fails to decode is not an error: the role degrades to RoleUser and
// the claims stay nil.
func sessionFor(accessToken, refreshToken string) Session {
	sess := Session{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		IsAuthenticated: true,
		Role:            RoleUser,
	}
	if claims, err := DecodeClaims(accessToken); err == nil {
		sess.Claims = claims
		sess.Role = claims.Role
	}
	return sess
}

// Login persists the token pair and replaces the session. The refresh
// token may be empty (registration flows auto-login without issuing
// one); the next 401 then forces a fresh login instead of a silent
// renewal. Malformed access tokens never fail the call.
func (s *Store) Login(accessToken, refreshToken string) error {
	if accessToken == "" {
		return errors.New("[Login] accessToken is required")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.ring.Set(AccessTokenKey, accessToken); err != nil {
		return errors.Wrap(err, "Login set accessToken")
	}
	if err := s.ring.Set(RefreshTokenKey, refreshToken); err != nil {
		return errors.Wrap(err, "Login set refreshToken")
	}

	s.cur = sessionFor(accessToken, refreshToken)
	s.log.Info().Str("role", string(s.cur.Role)).Msg("logged in")
	return nil
}

// Logout clears the keyring and resets the session to its zero value.
// Safe to call when already logged out.
func (s *Store) Logout() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.ring.Delete(AccessTokenKey); err != nil {
		return errors.Wrap(err, "Logout delete accessToken")
	}
	if err := s.ring.Delete(RefreshTokenKey); err != nil {
		return errors.Wrap(err, "Logout delete refreshToken")
	}

	if s.cur.IsAuthenticated {
		s.log.Info().Msg("logged out")
	}
	s.cur = Session{}
	return nil
}

// State returns a snapshot of the current session. Callable from any
// goroutine, including the HTTP client's retry path.
func (s *Store) State() Session {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cur
}
