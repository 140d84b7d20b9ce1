package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-tech-digest/internal/navigation"
)

// Package storage keeps the digest's small amount of local state: which
// article IDs were already published and the readers' browsing sessions.
// Articles themselves are never stored.

// Store is implemented by every storage backend.
type Store interface {
	Close() error
	SeenArticle(id string) (bool, error)
	MarkArticle(id string) error
	LoadSession(id string) (navigation.Session, bool, error)
	SaveSession(s navigation.Session) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ArticleTTL      time.Duration
	SessionTTL      time.Duration
	CleanupInterval time.Duration
}

const (
	defaultArticleTTL      = 2 * 24 * time.Hour
	defaultSessionTTL      = 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ArticleTTL <= 0 {
		opts.ArticleTTL = defaultArticleTTL
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                     { return nil }
func (noopStore) SeenArticle(string) (bool, error) { return false, nil }
func (noopStore) MarkArticle(string) error         { return nil }
func (noopStore) SaveSession(navigation.Session) error {
	return nil
}
func (noopStore) LoadSession(string) (navigation.Session, bool, error) {
	return navigation.Session{}, false, nil
}
