// Package pagesession keeps the state of one page view between its events.
// A session is minted on every page load and dropped once idle longer than the
// TTL, or earlier when the store is full and it is the least recently seen.
package pagesession

import (
	"container/list"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"plusultra/internal/application/ui"
)

// DefaultTTL is how long an idle page session is kept.
const DefaultTTL = 2 * time.Hour

// DefaultMaxSessions bounds the store when no maximum is given.
const DefaultMaxSessions = 10000

// ErrNotFound is returned for unknown, expired or mismatched sessions.
var ErrNotFound = errors.New("page session not found")

// Session is the state of one page view.
type Session struct {
	ID     string
	Page   string
	State  *ui.State
	Events *ui.Dispatcher

	mu       sync.Mutex
	lastSeen time.Time
}

// Do runs fn while holding the session, so events of one page view apply one at a time.
// PRE: fn is non-nil
// POST: returns fn's error
func (s *Session) Do(fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Store is an in-memory page session store holding at most limit sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*list.Element
	// recent orders sessions from most to least recently seen.
	recent *list.List
	ttl    time.Duration
	limit  int
	now    func() time.Time
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
// PRE: ttl > 0, otherwise DefaultTTL is used; limit > 0, otherwise DefaultMaxSessions is used
func NewStore(ttl time.Duration, limit int) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if limit <= 0 {
		limit = DefaultMaxSessions
	}
	return &Store{
		sessions: make(map[string]*list.Element),
		recent:   list.New(),
		ttl:      ttl,
		limit:    limit,
		now:      time.Now,
	}
}

// SetClock replaces the store's time source. Intended for tests.
func (st *Store) SetClock(now func() time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.now = now
}

// Create stores a fresh session for page and returns it.
// PRE: page is non-empty
// POST: session has a new random ID, empty state and no bound events;
// Len() <= limit, evicting the least recently seen session if needed
func (st *Store) Create(page string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := &Session{
		ID:       uuid.NewString(),
		Page:     page,
		State:    ui.NewState(),
		Events:   ui.NewDispatcher(),
		lastSeen: st.now(),
	}
	for st.recent.Len() >= st.limit {
		oldest := st.recent.Back()
		st.remove(oldest)
		slog.Debug("page_session_evicted", "session", oldest.Value.(*Session).ID)
	}
	st.sessions[s.ID] = st.recent.PushFront(s)
	return s
}

// Get retrieves the session id belonging to page and marks it active.
// PRE: none
// POST: returns ErrNotFound if the id is unknown, expired or belongs to another page
func (st *Store) Get(id, page string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	el, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s := el.Value.(*Session)
	if s.Page != page {
		return nil, ErrNotFound
	}
	now := st.now()
	if now.Sub(s.lastSeen) > st.ttl {
		st.remove(el)
		return nil, ErrNotFound
	}
	s.lastSeen = now
	st.recent.MoveToFront(el)
	return s, nil
}

// Delete removes a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if el, ok := st.sessions[id]; ok {
		st.remove(el)
	}
}

// remove drops el from both indexes.
// PRE: the caller holds st.mu
func (st *Store) remove(el *list.Element) {
	st.recent.Remove(el)
	delete(st.sessions, el.Value.(*Session).ID)
}

// Len returns the number of stored sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	removed := 0
	// Sessions past the TTL sit at the back of recent.
	for el := st.recent.Back(); el != nil; el = st.recent.Back() {
		if now.Sub(el.Value.(*Session).lastSeen) <= st.ttl {
			break
		}
		st.remove(el)
		removed++
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				slog.Debug("page_sessions_swept", "removed", n, "remaining", st.Len())
			}
		}
	}
}
