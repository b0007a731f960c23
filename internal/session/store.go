// Package session keeps one calculator per visitor or MCP client.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/averycrespi/calc-mcp/internal/calculator"
	"github.com/google/uuid"
)

const (
	DefaultTTL         = 30 * time.Minute
	DefaultMaxSessions = 10000
)

// ErrSessionNotFound is returned for ids that were never created or have expired
var ErrSessionNotFound = errors.New("session not found")

// NowFunc returns the current time
type NowFunc func() time.Time

// IDFunc generates a new session id
type IDFunc func() string

// SessionFunc runs with exclusive access to the calculator of session id
type SessionFunc func(id string, c *calculator.Calculator) error

// Option configures a Store
type Option func(*Store)

// WithTTL sets how long an idle session is kept. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithMaxSessions caps the number of live sessions. Zero means unlimited.
// When the cap is reached the least recently used session is evicted.
func WithMaxSessions(n int) Option {
	return func(s *Store) {
		s.maxSessions = n
	}
}

// WithNowFunc sets the clock used for idle tracking.
// This is primarily useful for testing expiry deterministically.
func WithNowFunc(nowFunc NowFunc) Option {
	return func(s *Store) {
		s.nowFunc = nowFunc
	}
}

// WithIDFunc sets the session id generator. The default is a random UUID.
func WithIDFunc(idFunc IDFunc) Option {
	return func(s *Store) {
		s.idFunc = idFunc
	}
}

// entry is one session. mu serializes key presses; lastUsed is guarded by Store.mu.
type entry struct {
	mu       sync.Mutex
	calc     *calculator.Calculator
	lastUsed time.Time
}

// Store maps session ids to independent calculators
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	ttl         time.Duration
	maxSessions int
	nowFunc     NowFunc
	idFunc      IDFunc
}

// NewStore creates an empty session store
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions:    make(map[string]*entry),
		ttl:         DefaultTTL,
		maxSessions: DefaultMaxSessions,
		nowFunc:     time.Now,
		idFunc:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session and returns its id
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.idFunc()
	s.insertLocked(id)
	return id
}

// Do runs fn with exclusive access to the session's calculator
func (s *Store) Do(id string, fn func(c *calculator.Calculator) error) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok && s.expiredLocked(e) {
		delete(s.sessions, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s.touch(e)
	return fn(e.calc)
}

// DoOrCreate runs fn on the session named id, creating it under id when it is
// missing or expired. An empty id creates a session under a generated id.
// Lookup, creation and the idle refresh happen under one lock, so fn runs even
// if the session is evicted while fn waits for it.
func (s *Store) DoOrCreate(id string, fn SessionFunc) (string, bool, error) {
	return s.do(id, true, fn)
}

// DoOrStart is DoOrCreate for ids supplied by untrusted clients: an id that
// does not name a live session is never adopted, and a session is started
// under a generated id instead.
func (s *Store) DoOrStart(id string, fn SessionFunc) (string, bool, error) {
	return s.do(id, false, fn)
}

func (s *Store) do(id string, adopt bool, fn SessionFunc) (string, bool, error) {
	id, e, created := s.resolve(id, adopt)

	e.mu.Lock()
	defer e.mu.Unlock()
	return id, created, fn(id, e.calc)
}

// resolve returns the live entry for id, or inserts a new one
func (s *Store) resolve(id string, adopt bool) (string, *entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if ok && !s.expiredLocked(e) {
		e.lastUsed = s.nowFunc()
		return id, e, false
	}
	if ok {
		delete(s.sessions, id)
	}
	if !adopt || id == "" {
		id = s.idFunc()
	}
	return id, s.insertLocked(id), true
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of sessions, including any not yet swept
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if s.expiredLocked(e) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("Swept expired sessions", "removed", n, "remaining", s.Len())
			}
		}
	}
}

func (s *Store) insertLocked(id string) *entry {
	if _, ok := s.sessions[id]; !ok && s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	e := &entry{
		calc:     calculator.New(),
		lastUsed: s.nowFunc(),
	}
	s.sessions[id] = e
	return e
}

func (s *Store) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.sessions {
		used := e.lastUsed
		if oldestID == "" || used.Before(oldest) {
			oldestID, oldest = id, used
		}
	}
	if oldestID != "" {
		slog.Debug("Evicting least recently used session", "session_id", oldestID)
		delete(s.sessions, oldestID)
	}
}

func (s *Store) touch(e *entry) {
	s.mu.Lock()
	e.lastUsed = s.nowFunc()
	s.mu.Unlock()
}

func (s *Store) expiredLocked(e *entry) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.nowFunc().Sub(e.lastUsed) > s.ttl
}
