package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/todolists/pkg/domain"
)

// DefaultPath is used when no base path is configured.
var DefaultPath = filepath.Join(".todolists", "sessions")

// Store implements ports.StateStore using the local filesystem.
// It stores sessions as JSON files in a configured directory.
// With a TTL, a file whose modification time is older than the TTL is an expired session.
type Store struct {
	BasePath string

	ttl       time.Duration
	now       func() time.Time
	sweepMu   sync.Mutex
	lastSweep time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithTTL expires a session ttl after its last save. Zero keeps sessions forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to DefaultPath.
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = DefaultPath
	}
	s := &Store{BasePath: basePath, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) expired(info os.FileInfo) bool {
	return s.ttl > 0 && s.now().Sub(info.ModTime()) >= s.ttl
}

func (s *Store) path(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("sessionID cannot be empty")
	}
	if strings.ContainsAny(sessionID, `/\`) || sessionID != filepath.Base(sessionID) {
		return "", fmt.Errorf("invalid sessionID %q", sessionID)
	}
	return filepath.Join(s.BasePath, sessionID+".json"), nil
}

// Save writes the state atomically: temp file in the same directory, fsync, rename.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.State) error {
	destPath, err := s.path(sessionID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+sessionID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing session file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to session file: %w", err)
	}
	s.maybeSweep()
	return nil
}

// Load retrieves the session state from its JSON file.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	filePath, err := s.path(sessionID)
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		info, err := os.Stat(filePath)
		if err == nil && s.expired(info) {
			_ = os.Remove(filePath)
			return nil, domain.ErrSessionNotFound
		}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	if state.Lists == nil {
		state.Lists = []domain.List{}
	}
	return &state, nil
}

// Delete removes the session file. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	filePath, err := s.path(sessionID)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// List returns live session IDs, removing the files of expired ones.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		if s.ttl > 0 {
			info, err := entry.Info()
			if err != nil {
				continue // removed underneath us
			}
			if s.expired(info) {
				_ = os.Remove(filepath.Join(s.BasePath, name))
				continue
			}
		}
		sessions = append(sessions, strings.TrimSuffix(name, ".json"))
	}
	return sessions, nil
}

// maybeSweep removes expired session files, at most once per TTL.
func (s *Store) maybeSweep() {
	if s.ttl <= 0 {
		return
	}
	s.sweepMu.Lock()
	now := s.now()
	due := now.Sub(s.lastSweep) >= s.ttl
	if due {
		s.lastSweep = now
	}
	s.sweepMu.Unlock()

	if due {
		_, _ = s.List(context.Background())
	}
}
