package session

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"
)

type key struct {
	app, user, id string
}

// Service stores sessions in memory, addressed by app, user and session id.
// Thread-safe for concurrent access.
type Service struct {
	mu       sync.RWMutex
	sessions map[key]Session
	turns    map[key]*semaphore.Weighted
}

// NewService creates an empty Service.
func NewService() *Service {
	return &Service{
		sessions: make(map[key]Session),
		turns:    make(map[key]*semaphore.Weighted),
	}
}

// Acquire blocks until the caller has sesh to itself or ctx ends. One
// conversation turn at a time keeps an assistant's tool calls adjacent to
// their results. The returned release must be called exactly once.
func (s *Service) Acquire(ctx context.Context, sesh Session) (release func(), err error) {
	k := key{sesh.AppName(), sesh.UserID(), sesh.ID()}

	s.mu.Lock()
	turn, ok := s.turns[k]
	if !ok {
		turn = semaphore.NewWeighted(1)
		s.turns[k] = turn
	}
	s.mu.Unlock()

	if err := turn.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { turn.Release(1) }, nil
}

// Create starts a new session for cfg.AppName and cfg.UserID. Returns
// ErrSessionExists if cfg.SessionID is already in use for that app and user.
func (s *Service) Create(ctx context.Context, cfg Config) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sesh := NewMemorySession(cfg)
	k := key{cfg.AppName, cfg.UserID, sesh.ID()}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[k]; exists {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrSessionExists, k.app, k.user, k.id)
	}
	s.sessions[k] = sesh
	return sesh, nil
}

// Get returns an existing session.
func (s *Service) Get(ctx context.Context, app, user, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sesh, exists := s.sessions[key{app, user, id}]
	if !exists {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrSessionNotFound, app, user, id)
	}
	return sesh, nil
}

// GetOrCreate returns the session named by cfg, creating it when it does
// not exist yet. An empty cfg.SessionID always creates a new session.
func (s *Service) GetOrCreate(ctx context.Context, cfg Config) (Session, error) {
	if cfg.SessionID != "" {
		s.mu.RLock()
		sesh, exists := s.sessions[key{cfg.AppName, cfg.UserID, cfg.SessionID}]
		s.mu.RUnlock()
		if exists {
			return sesh, nil
		}
	}

	sesh, err := s.Create(ctx, cfg)
	if err != nil {
		// Lost a race with a concurrent create of the same id.
		return s.Get(ctx, cfg.AppName, cfg.UserID, cfg.SessionID)
	}
	return sesh, nil
}

// List returns the ids of the sessions one user holds in one app, sorted.
func (s *Service) List(ctx context.Context, app, user string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for k := range s.sessions {
		if k.app == app && k.user == user {
			ids = append(ids, k.id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a session. Returns ErrSessionNotFound if it does not exist.
func (s *Service) Delete(ctx context.Context, app, user, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{app, user, id}
	if _, exists := s.sessions[k]; !exists {
		return fmt.Errorf("%w: %s/%s/%s", ErrSessionNotFound, app, user, id)
	}
	delete(s.sessions, k)
	delete(s.turns, k)
	return nil
}
