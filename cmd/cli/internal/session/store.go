package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/adgenlab/adgen/internal/api"
)

// ErrNoSession is returned by commands that require a logged-in user.
var ErrNoSession = errors.New("not logged in")

// Fixed storage names under the session directory. These mirror the three
// values the web client keeps in browser storage.
const (
	accessTokenFile  = "access_token"
	refreshTokenFile = "refresh_token"
	profileFile      = "profile.json"
)

// Session is an immutable snapshot of the logged-in identity.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         api.User
}

// Store is the single authoritative record of the logged-in identity,
// persisted under ~/.adgen/session/ so it survives across runs. Only
// Establish and Clear mutate it; readers always see either a complete
// session or none.
type Store struct {
	baseDir string

	mu      sync.RWMutex
	current *Session
}

// NewStore creates a session store rooted at baseDir.
// If baseDir is empty, uses ~/.adgen/session/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".adgen", "session")
	}

	// Tokens live here, keep the directory private
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("session store initialized")

	return &Store{baseDir: baseDir}, nil
}

// Restore loads the persisted session into memory. Missing or malformed
// state degrades to logged-out and purges whatever partial files remain;
// it never returns an error. Returns the restored session or nil.
func (s *Store) Restore() *Session {
	token, err := os.ReadFile(filepath.Join(s.baseDir, accessTokenFile))
	if err != nil || len(token) == 0 {
		s.purge()
		return nil
	}

	profileData, err := os.ReadFile(filepath.Join(s.baseDir, profileFile))
	if err != nil {
		s.purge()
		return nil
	}

	var user api.User
	if err := json.Unmarshal(profileData, &user); err != nil {
		log.Warn().Err(err).Msg("persisted profile is malformed, clearing session")
		s.purge()
		return nil
	}

	// Refresh token is optional; absence is not an error.
	refresh, _ := os.ReadFile(filepath.Join(s.baseDir, refreshTokenFile))

	sess := &Session{
		AccessToken:  string(token),
		RefreshToken: string(refresh),
		User:         user,
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	log.Debug().Str("email", user.Email).Msg("session restored")

	return s.snapshot()
}

// Establish persists a new session, replacing any prior one. The profile is
// written before the access token so a concurrent Restore never observes a
// token without a profile. refreshToken may be empty.
func (s *Store) Establish(accessToken, refreshToken string, user api.User) error {
	if accessToken == "" {
		return errors.New("access token is required")
	}

	profileData, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := s.writeFile(profileFile, profileData); err != nil {
		s.purge()
		return err
	}
	if refreshToken != "" {
		if err := s.writeFile(refreshTokenFile, []byte(refreshToken)); err != nil {
			s.purge()
			return err
		}
	} else {
		_ = os.Remove(filepath.Join(s.baseDir, refreshTokenFile))
	}
	if err := s.writeFile(accessTokenFile, []byte(accessToken)); err != nil {
		s.purge()
		return err
	}

	s.mu.Lock()
	s.current = &Session{AccessToken: accessToken, RefreshToken: refreshToken, User: user}
	s.mu.Unlock()

	log.Info().Str("email", user.Email).Msg("session established")

	return nil
}

// Clear removes all persisted and in-memory session state. Calling it on an
// already-empty store is a no-op, not an error.
func (s *Store) Clear() error {
	for _, name := range []string{accessTokenFile, refreshTokenFile, profileFile} {
		if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}

	s.mu.Lock()
	cleared := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if cleared {
		log.Info().Msg("session cleared")
	}

	return nil
}

// Current returns a snapshot of the in-memory session, or nil when logged
// out. Callers must Restore first after process start.
func (s *Store) Current() *Session {
	return s.snapshot()
}

// IsAuthenticated reports whether a profile is currently held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// AccessToken implements api.TokenSource. Empty when logged out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}

func (s *Store) snapshot() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// purge drops partial persisted state without reporting errors; Restore must
// degrade to logged-out, never crash.
func (s *Store) purge() {
	for _, name := range []string{accessTokenFile, refreshTokenFile, profileFile} {
		_ = os.Remove(filepath.Join(s.baseDir, name))
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// writeFile writes atomically via a temp file and rename.
func (s *Store) writeFile(name string, data []byte) error {
	path := filepath.Join(s.baseDir, name)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save %s: %w", name, err)
	}

	return nil
}
