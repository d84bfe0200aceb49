// Package store is the state container for one browsing session. It owns the
// catalog and vibe search slices, applies every transition through their
// reducers, and pushes a fresh View to subscribers after each change.
//
// Remote calls run outside the lock. Each domain tags its requests with a
// ticket from a fetch.Sequencer and only the response to the latest ticket is
// applied, so a slow reply can never overwrite a newer one.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"vibecatalog/internal/backend"
	"vibecatalog/internal/catalog"
	"vibecatalog/internal/fetch"
	"vibecatalog/internal/logger"
	"vibecatalog/internal/vibe"
)

var (
	// ErrSuperseded is returned when a response arrived after a newer request
	// for the same domain and was discarded.
	ErrSuperseded = errors.New("response superseded by a newer request")
	// ErrNoArtist is returned when a catalog lookup names no artist.
	ErrNoArtist = errors.New("artist is required")
	// ErrNoQuery is returned when a vibe search has no query.
	ErrNoQuery = errors.New("query is required")
)

// CatalogSource looks up an artist's catalog.
type CatalogSource interface {
	CatalogDuration(ctx context.Context, artist string) (backend.CatalogDuration, error)
}

// VibeSearcher runs vibe searches.
type VibeSearcher interface {
	VibeSearch(ctx context.Context, req backend.VibeSearchRequest) (backend.VibeSearchResult, error)
}

// Authenticator reports the session's auth state.
type Authenticator interface {
	AuthStatus(ctx context.Context) (bool, error)
	LoginURL(ctx context.Context) (string, error)
}

// Options configures a Store. Auth may be nil to skip the auth precondition.
type Options struct {
	Catalog      CatalogSource
	Vibe         VibeSearcher
	Auth         Authenticator
	ItemsPerPage int
	Logger       *logger.Logger
}

// Store holds the state of one browsing session.
type Store struct {
	id         string
	catalogSrc CatalogSource
	vibeSrc    VibeSearcher
	auth       Authenticator
	logger     *logger.Logger

	catalogSeq fetch.Sequencer
	vibeSeq    fetch.Sequencer

	mu          sync.Mutex
	catalogSt   catalog.State
	vibeSt      vibe.State
	revision    uint64
	subscribers []chan View
}

// New creates a Store with empty state.
func New(opts Options) *Store {
	id := uuid.NewString()
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Store{
		id:         id,
		catalogSrc: opts.Catalog,
		vibeSrc:    opts.Vibe,
		auth:       opts.Auth,
		logger:     log.With("session", id),
		catalogSt:  catalog.NewState(opts.ItemsPerPage),
		vibeSt:     vibe.NewState(),
	}
}

// ID identifies the session.
func (s *Store) ID() string { return s.id }

// Subscribe returns a channel receiving a View after every state change.
// Slow subscribers miss intermediate views rather than block the store.
func (s *Store) Subscribe() <-chan View {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan View, 10)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (s *Store) Unsubscribe(ch <-chan View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// changed bumps the revision and notifies subscribers. Callers hold s.mu.
func (s *Store) changed() {
	s.revision++
	v := s.viewLocked()
	for _, ch := range s.subscribers {
		select {
		case ch <- v:
		default:
		}
	}
}

// authorize checks the auth precondition before a remote call.
func (s *Store) authorize(ctx context.Context) error {
	if s.auth == nil {
		return nil
	}
	ok, err := s.auth.AuthStatus(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return &backend.RequestError{Op: "auth status", Message: "Not authenticated", Err: backend.ErrNotAuthenticated}
	}
	return nil
}

// AuthStatus reports whether the session may issue fetches.
func (s *Store) AuthStatus(ctx context.Context) (bool, error) {
	if s.auth == nil {
		return true, nil
	}
	return s.auth.AuthStatus(ctx)
}

// LoginURL returns where the user must go to authenticate.
func (s *Store) LoginURL(ctx context.Context) (string, error) {
	if s.auth == nil {
		return "", errors.New("no authenticator configured")
	}
	return s.auth.LoginURL(ctx)
}

// errorMessage turns a failed call into the text shown to the user.
func errorMessage(err error, fallback string) string {
	var reqErr *backend.RequestError
	switch {
	case errors.As(err, &reqErr) && reqErr.Message != "":
		return reqErr.Message
	case errors.Is(err, context.Canceled):
		return "Request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	case err != nil && err.Error() != "":
		return err.Error()
	default:
		return fallback
	}
}
