package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adgenlab/adgen/cmd/cli/internal/session"
	"github.com/adgenlab/adgen/internal/api"
	"github.com/adgenlab/adgen/internal/config"
	"github.com/adgenlab/adgen/internal/logger"
)

// Globals holds flags shared by every command.
type Globals struct {
	Debug      bool
	Version    string
	APIURL     string
	Config     string
	SessionDir string
}

// clientTimeout bounds every API call. Generation is synchronous on the
// backend and commonly takes tens of seconds, so this is deliberately long.
const clientTimeout = 5 * time.Minute

// openSession initializes the session store and restores any persisted
// session. A nil session means logged out, never an error.
func openSession(globals *Globals) (*session.Store, *session.Session, error) {
	store, err := session.NewStore(globals.SessionDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	return store, store.Restore(), nil
}

// requireSession is openSession for commands that need a logged-in user.
func requireSession(globals *Globals) (*session.Store, *session.Session, error) {
	store, sess, err := openSession(globals)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, fmt.Errorf("%w\n\nRun 'adgen-cli auth login' to sign in", session.ErrNoSession)
	}
	return store, sess, nil
}

// newClient builds the API gateway client for the given token source. The
// session-expiry policy is injected here: clear the store, tell the user.
func newClient(globals *Globals, store *session.Store, tokens api.TokenSource) (*api.Client, error) {
	cfg, err := config.Load(globals.Config)
	if err != nil {
		return nil, err
	}

	httpClient := api.NewCachingHTTPClient(resolveCacheDir(cfg), clientTimeout)
	if globals.Debug {
		httpClient.Transport = logger.NewHTTPRequests(httpClient.Transport)
	}

	return api.New(api.Config{
		BaseURL:    cfg.ResolveBaseURL(globals.APIURL),
		HTTPClient: httpClient,
		Tokens:     tokens,
		OnAuthExpired: func() {
			if err := store.Clear(); err != nil {
				log.Warn().Err(err).Msg("failed to clear expired session")
			}
			fmt.Fprintln(os.Stderr, "Session expired. Run 'adgen-cli auth login' to sign in again.")
		},
	}), nil
}

// sessionClient is the common wiring: the store itself is the token source.
func sessionClient(globals *Globals, store *session.Store) (*api.Client, error) {
	return newClient(globals, store, store)
}

// resolveCacheDir picks the image cache location, falling back to in-memory
// caching when no home directory is available.
func resolveCacheDir(cfg *config.Config) string {
	if cfg.CacheDir != "" {
		return cfg.CacheDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".adgen", "cache", "images")
}
