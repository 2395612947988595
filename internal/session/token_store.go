package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// TokenStore persists the opaque bearer token across process restarts.
// An empty token means logged out. Writes are idempotent and
// last-writer-wins.
type TokenStore interface {
	// Load returns the persisted token, or "" when none is stored.
	Load() (string, error)

	// Save stores the token durably.
	Save(token string) error

	// Clear removes the persisted token. Clearing an empty store is not
	// an error.
	Clear() error
}

const tokenFileName = "token"

// FileTokenStore stores the token in a single file on the local filesystem.
type FileTokenStore struct {
	baseDir string
}

// NewFileTokenStore creates a file-backed token store.
// If baseDir is empty, uses ~/.transferctl/
func NewFileTokenStore(baseDir string) (*FileTokenStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".transferctl")
	}

	// Create directory with 0700 permissions
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("token store initialized")

	return &FileTokenStore{baseDir: baseDir}, nil
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, tokenFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return string(data), nil
}

func (s *FileTokenStore) Save(token string) error {
	tokenPath := filepath.Join(s.baseDir, tokenFileName)
	tempPath := tokenPath + ".tmp"

	if err := os.WriteFile(tempPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, tokenPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(filepath.Join(s.baseDir, tokenFileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// MemoryTokenStore implements TokenStore in memory.
// This implementation is for testing only - data is lost on restart.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore creates a new in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
