package api

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions is returned when the store is full.
	ErrTooManySessions = errors.New("too many sessions")
)

// Session is one remotely driven game. The engine is guarded by the session
// mutex; callers go through Do.
type Session struct {
	ID   string
	Seed int64

	mu       sync.Mutex
	engine   *blocks.Engine
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session's engine.
func (s *Session) Do(fn func(e *blocks.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// Store holds live sessions keyed by ID. Sessions idle longer than the TTL
// are removed by Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	now      func() time.Time
	logger   *log.Logger
}

// NewStore creates a store. A zero ttl disables expiry; a zero max disables the cap.
func NewStore(ttl time.Duration, max int, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
		logger:   logger,
	}
}

// Create starts a new game seeded with seed.
func (st *Store) Create(seed int64) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.max > 0 && len(st.sessions) >= st.max {
		st.sweepLocked()
		if len(st.sessions) >= st.max {
			return nil, ErrTooManySessions
		}
	}

	id := uuid.NewString()
	s := &Session{
		ID:       id,
		Seed:     seed,
		engine:   blocks.New(rand.New(rand.NewSource(seed)), blocks.WithLogger(st.logger.With("session", id))),
		lastSeen: st.now(),
	}
	st.sessions[id] = s
	st.logger.Debug("session created", "id", id, "seed", seed)
	return s, nil
}

// Get returns the session and marks it as seen.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok || st.expired(s) {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = st.now()
	return s, nil
}

// Delete removes the session.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	st.logger.Debug("session deleted", "id", id)
	return nil
}

// Len returns the number of stored sessions, expired ones included until swept.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sweepLocked()
}

func (st *Store) sweepLocked() int {
	removed := 0
	for id, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.logger.Debug("sessions expired", "count", removed)
	}
	return removed
}

func (st *Store) expired(s *Session) bool {
	return st.ttl > 0 && st.now().Sub(s.lastSeen) > st.ttl
}

// RunSweeper calls Sweep every interval until ctx is done.
func (st *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			st.Sweep()
		}
	}
}
