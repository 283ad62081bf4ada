package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ayush2735/claynest-web-craft/internal/cache"
	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const persistTimeout = time.Second

type session struct {
	store    *Store
	lastSeen time.Time
}

// Sessions maps session ids to their cart stores. Every mutation of a store is
// written through to the cache so a restart does not lose the cart.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session
	cache    cache.CartCache
	sfg      singleflight.Group // one cache load per session id
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessions(c cache.CartCache, logger *zap.Logger) *Sessions {
	return &Sessions{
		sessions: make(map[string]*session),
		cache:    c,
		logger:   logger,
		now:      time.Now,
	}
}

// ErrCartUnavailable means the saved cart of a session could not be read. No
// store is registered, so a later request loads the cart again.
var ErrCartUnavailable = errors.New("cart temporarily unavailable")

// Get returns the store of sessionID, loading it from the cache or creating an
// empty one on a cache miss. Any other cache failure is returned as
// ErrCartUnavailable rather than replacing the saved cart with an empty one.
func (s *Sessions) Get(ctx context.Context, sessionID string) (*Store, error) {
	if store := s.lookup(sessionID); store != nil {
		return store, nil
	}

	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		if store := s.lookup(sessionID); store != nil {
			return store, nil
		}

		lines, err := s.cache.Get(ctx, sessionID)
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("cart cache get failed", zap.String("session_id", sessionID), zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrCartUnavailable, err)
		}

		store := NewStoreFrom(lines)
		store.Subscribe(func(lines []domain.CartLine) {
			s.persist(sessionID, lines)
		})

		s.mu.Lock()
		s.sessions[sessionID] = &session{store: store, lastSeen: s.now()}
		s.mu.Unlock()
		return store, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

func (s *Sessions) lookup(sessionID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.lastSeen = s.now()
		return sess.store
	}
	return nil
}

// Prune drops in-memory stores idle for longer than idle. Their cached copy
// stays in Redis until it expires.
func (s *Sessions) Prune(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Sessions) persist(sessionID string, lines []domain.CartLine) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	var err error
	if len(lines) == 0 {
		err = s.cache.Delete(ctx, sessionID)
	} else {
		err = s.cache.Set(ctx, sessionID, lines)
	}
	if err != nil {
		s.logger.Warn("cart cache write failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}
