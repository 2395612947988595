package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/transferctl/internal/api"
	"github.com/wolfeidau/transferctl/internal/models"
)

// Status is the authentication state of the session.
type Status int

const (
	// StatusUnauthenticated means no token is held.
	StatusUnauthenticated Status = iota

	// StatusAuthenticating means a token is held but the profile has not
	// resolved yet. No protected or public content should render during
	// this phase.
	StatusAuthenticating

	// StatusAuthenticated means the token resolved to a user profile.
	StatusAuthenticated

	// StatusInvalid is the transient state published when validation
	// rejects the held token, immediately before the forced logout.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// AuthAPI is the slice of the HTTP client the session store drives.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
	CurrentUser(ctx context.Context) (*models.UserProfile, error)
	SetToken(token string)
	ClearToken()
}

// Snapshot is an immutable view of the session at one point in time.
// User is non-nil exactly when Status is StatusAuthenticated.
type Snapshot struct {
	Status Status
	Token  string
	User   *models.UserProfile
}

// Store is the single source of truth for authentication state. It is the
// only writer of the session; readers observe it via Current or Subscribe.
//
// Mutations are serialized with a generation counter: every login and
// logout bumps the generation, and async completions re-check it before
// touching state, so a late response from a superseded operation can never
// resurrect stale credentials.
type Store struct {
	api    AuthAPI
	tokens TokenStore

	mu     sync.Mutex
	status Status
	token  string
	user   *models.UserProfile
	gen    uint64
	subs   []func(Snapshot)
}

// NewStore creates a session store. If a persisted token exists the store
// starts in StatusAuthenticating; call Resume to validate it.
func NewStore(authAPI AuthAPI, tokens TokenStore) *Store {
	s := &Store{
		api:    authAPI,
		tokens: tokens,
		status: StatusUnauthenticated,
	}

	token, err := tokens.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load persisted token, starting unauthenticated")
		return s
	}

	if token != "" {
		s.token = token
		s.status = StatusAuthenticating
		s.api.SetToken(token)
		log.Debug().Msg("resuming session from persisted token")
	}

	return s
}

// Current returns a snapshot of the session.
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called after every state change, in
// transition order. Callbacks run with the store lock held and must not
// call back into the store.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Resume validates a session restored from persisted storage. It is a
// no-op unless the store started in StatusAuthenticating.
func (s *Store) Resume(ctx context.Context) {
	s.mu.Lock()
	if s.status != StatusAuthenticating || s.token == "" {
		s.mu.Unlock()
		return
	}
	gen := s.gen
	s.mu.Unlock()

	s.validate(ctx, gen)
}

// Login exchanges the credentials for a token, persists it, and resolves
// the user profile. It returns true only if both steps succeeded; on any
// failure the session is fully rolled back to StatusUnauthenticated with
// no persisted token.
//
// Empty credentials return false without a network call or state change.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	if username == "" || password == "" {
		return false
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.status = StatusAuthenticating
	s.token = ""
	s.user = nil
	s.api.ClearToken()
	s.notifyLocked()
	s.mu.Unlock()

	token, err := s.api.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		log.Debug().Err(err).Str("username", username).Msg("login failed")
		s.abort(gen)
		return false
	}

	s.mu.Lock()
	if gen != s.gen {
		// Superseded by a later login or logout; drop the token.
		s.mu.Unlock()
		return false
	}
	s.token = token
	s.api.SetToken(token)
	if err := s.tokens.Save(token); err != nil {
		log.Warn().Err(err).Msg("failed to persist token")
	}
	s.mu.Unlock()

	return s.validate(ctx, gen)
}

// ValidateSession re-fetches the user profile for the held token. On any
// failure it forces a logout; a stale token discovered here is recovered
// locally rather than surfaced as an error.
func (s *Store) ValidateSession(ctx context.Context) {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	gen := s.gen
	s.mu.Unlock()

	s.validate(ctx, gen)
}

// Logout clears the token from memory, durable storage, and the HTTP
// client, and sets the session to StatusUnauthenticated. It is idempotent
// and never fails.
func (s *Store) Logout() {
	s.mu.Lock()
	s.gen++
	s.clearLocked()
	s.notifyLocked()
	s.mu.Unlock()
}

// validate resolves the profile for generation gen. The result is
// discarded if the generation moved on while the request was in flight.
func (s *Store) validate(ctx context.Context, gen uint64) bool {
	user, err := s.api.CurrentUser(ctx)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return false
	}

	if err != nil {
		if api.IsAuthFailure(err) {
			log.Debug().Err(err).Msg("token rejected by server, logging out")
		} else {
			log.Debug().Err(err).Msg("session validation failed, logging out")
		}
		s.status = StatusInvalid
		s.user = nil
		s.notifyLocked()
		s.clearLocked()
		s.notifyLocked()
		s.mu.Unlock()
		return false
	}

	s.user = user
	s.status = StatusAuthenticated
	s.notifyLocked()
	s.mu.Unlock()

	log.Debug().Str("username", user.Username).Str("role", user.Role).Msg("session validated")
	return true
}

// abort rolls back a failed login unless a later operation took over.
func (s *Store) abort(gen uint64) {
	s.mu.Lock()
	if gen == s.gen {
		s.clearLocked()
		s.notifyLocked()
	}
	s.mu.Unlock()
}

func (s *Store) clearLocked() {
	s.token = ""
	s.user = nil
	s.status = StatusUnauthenticated
	s.api.ClearToken()
	if err := s.tokens.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear persisted token")
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Status: s.status, Token: s.token}
	if s.user != nil {
		// Clone to avoid external modifications
		user := *s.user
		snap.User = &user
	}
	return snap
}

func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snap)
	}
}
