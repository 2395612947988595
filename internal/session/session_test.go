package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfeidau/transferctl/internal/api"
	"github.com/wolfeidau/transferctl/internal/models"
)

// fakeAPI implements AuthAPI without a network.
type fakeAPI struct {
	mu         sync.Mutex
	token      string
	loginCalls int
	userCalls  int

	loginFn func(creds models.Credentials) (string, error)
	userFn  func() (*models.UserProfile, error)
}

func (f *fakeAPI) Login(ctx context.Context, creds models.Credentials) (string, error) {
	f.mu.Lock()
	f.loginCalls++
	f.mu.Unlock()
	return f.loginFn(creds)
}

func (f *fakeAPI) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	f.mu.Lock()
	f.userCalls++
	f.mu.Unlock()
	return f.userFn()
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeAPI) ClearToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
}

func (f *fakeAPI) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func okAPI(token string, user models.UserProfile) *fakeAPI {
	return &fakeAPI{
		loginFn: func(models.Credentials) (string, error) { return token, nil },
		userFn: func() (*models.UserProfile, error) {
			u := user
			return &u, nil
		},
	}
}

// recordStatuses subscribes and records every published status, asserting
// the user-presence invariant on each snapshot.
func recordStatuses(t *testing.T, store *Store) *[]Status {
	t.Helper()
	var seen []Status
	store.Subscribe(func(snap Snapshot) {
		assert.Equal(t, snap.Status == StatusAuthenticated, snap.User != nil,
			"user must be present iff authenticated")
		seen = append(seen, snap.Status)
	})
	return &seen
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("empty credentials fail without network call or mutation", func(t *testing.T) {
		fake := okAPI("abc123", models.UserProfile{Username: "alice", Role: "Client"})
		tokens := NewMemoryTokenStore()
		store := NewStore(fake, tokens)
		seen := recordStatuses(t, store)

		assert.False(t, store.Login(ctx, "", "pw1"))
		assert.False(t, store.Login(ctx, "alice", ""))

		assert.Zero(t, fake.loginCalls)
		assert.Zero(t, fake.userCalls)
		assert.Equal(t, StatusUnauthenticated, store.Current().Status)
		assert.Empty(t, *seen)
	})

	t.Run("success resolves profile and persists token", func(t *testing.T) {
		fake := okAPI("abc123", models.UserProfile{Username: "alice", Role: "Client"})
		tokens := NewMemoryTokenStore()
		store := NewStore(fake, tokens)
		seen := recordStatuses(t, store)

		require.True(t, store.Login(ctx, "alice", "pw1"))

		snap := store.Current()
		assert.Equal(t, StatusAuthenticated, snap.Status)
		require.NotNil(t, snap.User)
		assert.Equal(t, "alice", snap.User.Username)
		assert.Equal(t, "Client", snap.User.Role)
		assert.Equal(t, "abc123", snap.Token)
		assert.Equal(t, "abc123", fake.currentToken())

		persisted, err := tokens.Load()
		require.NoError(t, err)
		assert.Equal(t, "abc123", persisted)

		assert.Equal(t, []Status{StatusAuthenticating, StatusAuthenticated}, *seen)
	})

	t.Run("rejected credentials roll back fully", func(t *testing.T) {
		fake := &fakeAPI{
			loginFn: func(models.Credentials) (string, error) {
				return "", api.ErrInvalidCredentials
			},
		}
		tokens := NewMemoryTokenStore()
		store := NewStore(fake, tokens)

		assert.False(t, store.Login(ctx, "alice", "wrong"))

		snap := store.Current()
		assert.Equal(t, StatusUnauthenticated, snap.Status)
		assert.Empty(t, snap.Token)
		assert.Empty(t, fake.currentToken())

		persisted, err := tokens.Load()
		require.NoError(t, err)
		assert.Empty(t, persisted)
	})

	t.Run("profile fetch failure after token exchange rolls back fully", func(t *testing.T) {
		fake := &fakeAPI{
			loginFn: func(models.Credentials) (string, error) { return "abc123", nil },
			userFn: func() (*models.UserProfile, error) {
				return nil, &api.Error{StatusCode: 500}
			},
		}
		tokens := NewMemoryTokenStore()
		store := NewStore(fake, tokens)
		seen := recordStatuses(t, store)

		assert.False(t, store.Login(ctx, "alice", "pw1"))

		snap := store.Current()
		assert.Equal(t, StatusUnauthenticated, snap.Status)
		assert.Empty(t, snap.Token)
		assert.Empty(t, fake.currentToken())

		persisted, err := tokens.Load()
		require.NoError(t, err)
		assert.Empty(t, persisted, "no persisted token may survive a half-finished login")

		assert.Equal(t, []Status{StatusAuthenticating, StatusInvalid, StatusUnauthenticated}, *seen)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("is idempotent", func(t *testing.T) {
		fake := okAPI("abc123", models.UserProfile{Username: "alice", Role: "Client"})
		tokens := NewMemoryTokenStore()
		store := NewStore(fake, tokens)
		require.True(t, store.Login(ctx, "alice", "pw1"))

		store.Logout()
		first := store.Current()
		store.Logout()
		second := store.Current()

		assert.Equal(t, first, second)
		assert.Equal(t, StatusUnauthenticated, second.Status)
		assert.Nil(t, second.User)
		assert.Empty(t, fake.currentToken())

		persisted, err := tokens.Load()
		require.NoError(t, err)
		assert.Empty(t, persisted)
	})

	t.Run("on a fresh store is a no-op", func(t *testing.T) {
		fake := okAPI("abc123", models.UserProfile{Username: "alice", Role: "Client"})
		store := NewStore(fake, NewMemoryTokenStore())

		store.Logout()
		assert.Equal(t, StatusUnauthenticated, store.Current().Status)
	})
}

func TestResume(t *testing.T) {
	ctx := context.Background()

	t.Run("starts authenticating when a token is persisted", func(t *testing.T) {
		fake := okAPI("", models.UserProfile{Username: "alice", Role: "Client"})
		tokens := NewMemoryTokenStore()
		require.NoError(t, tokens.Save("persisted-token"))

		store := NewStore(fake, tokens)
		assert.Equal(t, StatusAuthenticating, store.Current().Status)
		assert.Equal(t, "persisted-token", fake.currentToken())
	})

	t.Run("validates a persisted token to authenticated", func(t *testing.T) {
		fake := okAPI("", models.UserProfile{Username: "alice", Role: "Client"})
		tokens := NewMemoryTokenStore()
		require.NoError(t, tokens.Save("persisted-token"))

		store := NewStore(fake, tokens)
		store.Resume(ctx)

		snap := store.Current()
		assert.Equal(t, StatusAuthenticated, snap.Status)
		require.NotNil(t, snap.User)
		assert.Equal(t, "alice", snap.User.Username)
	})

	t.Run("rejected persisted token is removed from durable storage", func(t *testing.T) {
		fake := &fakeAPI{
			userFn: func() (*models.UserProfile, error) {
				return nil, &api.Error{StatusCode: 401}
			},
		}
		tokens := NewMemoryTokenStore()
		require.NoError(t, tokens.Save("stale-token"))

		store := NewStore(fake, tokens)
		store.Resume(ctx)

		assert.Equal(t, StatusUnauthenticated, store.Current().Status)
		assert.Empty(t, fake.currentToken())

		persisted, err := tokens.Load()
		require.NoError(t, err)
		assert.Empty(t, persisted)
	})

	t.Run("is a no-op without a persisted token", func(t *testing.T) {
		fake := &fakeAPI{}
		store := NewStore(fake, NewMemoryTokenStore())

		store.Resume(ctx)
		assert.Equal(t, StatusUnauthenticated, store.Current().Status)
		assert.Zero(t, fake.userCalls)
	})
}

func TestValidateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("network failure during validation forces logout", func(t *testing.T) {
		calls := 0
		fake := &fakeAPI{
			loginFn: func(models.Credentials) (string, error) { return "abc123", nil },
		}
		fake.userFn = func() (*models.UserProfile, error) {
			calls++
			if calls == 1 {
				return &models.UserProfile{Username: "alice", Role: "Client"}, nil
			}
			return nil, errors.New("connection refused")
		}
		tokens := NewMemoryTokenStore()
		store := NewStore(fake, tokens)
		require.True(t, store.Login(ctx, "alice", "pw1"))

		store.ValidateSession(ctx)

		assert.Equal(t, StatusUnauthenticated, store.Current().Status)
		persisted, err := tokens.Load()
		require.NoError(t, err)
		assert.Empty(t, persisted)
	})

	t.Run("refreshes the profile wholesale", func(t *testing.T) {
		calls := 0
		fake := &fakeAPI{
			loginFn: func(models.Credentials) (string, error) { return "abc123", nil },
		}
		fake.userFn = func() (*models.UserProfile, error) {
			calls++
			if calls == 1 {
				return &models.UserProfile{Username: "alice", Role: "Client"}, nil
			}
			return &models.UserProfile{Username: "alice", Role: "Operator"}, nil
		}
		store := NewStore(fake, NewMemoryTokenStore())
		require.True(t, store.Login(ctx, "alice", "pw1"))

		store.ValidateSession(ctx)

		snap := store.Current()
		assert.Equal(t, StatusAuthenticated, snap.Status)
		assert.Equal(t, "Operator", snap.User.Role)
	})

	t.Run("without a token does nothing", func(t *testing.T) {
		fake := &fakeAPI{}
		store := NewStore(fake, NewMemoryTokenStore())

		store.ValidateSession(ctx)
		assert.Zero(t, fake.userCalls)
	})
}

func TestGenerationDiscipline(t *testing.T) {
	ctx := context.Background()

	t.Run("late validate response cannot resurrect a logged-out session", func(t *testing.T) {
		var store *Store
		fake := &fakeAPI{
			loginFn: func(models.Credentials) (string, error) { return "abc123", nil },
		}
		// The logout lands while the profile fetch is in flight.
		fake.userFn = func() (*models.UserProfile, error) {
			store.Logout()
			return &models.UserProfile{Username: "alice", Role: "Client"}, nil
		}
		tokens := NewMemoryTokenStore()
		store = NewStore(fake, tokens)

		assert.False(t, store.Login(ctx, "alice", "pw1"))

		snap := store.Current()
		assert.Equal(t, StatusUnauthenticated, snap.Status)
		assert.Nil(t, snap.User)
		assert.Empty(t, fake.currentToken())

		persisted, err := tokens.Load()
		require.NoError(t, err)
		assert.Empty(t, persisted)
	})

	t.Run("late token exchange cannot overwrite a newer logout", func(t *testing.T) {
		var store *Store
		fake := &fakeAPI{
			userFn: func() (*models.UserProfile, error) {
				return &models.UserProfile{Username: "alice", Role: "Client"}, nil
			},
		}
		fake.loginFn = func(models.Credentials) (string, error) {
			store.Logout()
			return "abc123", nil
		}
		tokens := NewMemoryTokenStore()
		store = NewStore(fake, tokens)

		assert.False(t, store.Login(ctx, "alice", "pw1"))

		assert.Equal(t, StatusUnauthenticated, store.Current().Status)
		assert.Zero(t, fake.userCalls, "superseded login must not fetch a profile")
		assert.Empty(t, fake.currentToken())
	})
}
