package debug

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session retention limits. Sessions exist to let a user inspect why a
// compile failed shortly after it happened; they are not an archive.
const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 100
)

// Session captures a failed compilation: the offending document, the
// compiler's message, and the derived hints.
type Session struct {
	ID        uuid.UUID `json:"id"`
	LaTeX     string    `json:"latex"`
	Log       string    `json:"log"`
	Hints     []string  `json:"hints,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store holds failed-compilation sessions in memory with TTL expiry and a
// hard cap on count.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]Session
	ttl      time.Duration
	max      int
	now      func() time.Time
}

// NewStore creates a session store with the default TTL and cap.
func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]Session),
		ttl:      DefaultSessionTTL,
		max:      DefaultMaxSessions,
		now:      time.Now,
	}
}

// Put records a session and returns its ID. Expired sessions are pruned
// on the way in; if the store is still at capacity the oldest session is
// evicted.
func (s *Store) Put(latexSource, compileLog string, hints []string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	if len(s.sessions) >= s.max {
		s.evictOldestLocked()
	}

	session := Session{
		ID:        uuid.New(),
		LaTeX:     latexSource,
		Log:       compileLog,
		Hints:     hints,
		CreatedAt: s.now(),
	}
	s.sessions[session.ID] = session
	return session.ID
}

// Get returns a session by ID. Expired sessions are gone.
func (s *Store) Get(id uuid.UUID) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if s.now().Sub(session.CreatedAt) > s.ttl {
		delete(s.sessions, id)
		return Session{}, false
	}
	return session, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	return len(s.sessions)
}

func (s *Store) pruneLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, session := range s.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func (s *Store) evictOldestLocked() {
	var oldestID uuid.UUID
	var oldest time.Time
	for id, session := range s.sessions {
		if oldest.IsZero() || session.CreatedAt.Before(oldest) {
			oldest = session.CreatedAt
			oldestID = id
		}
	}
	if oldestID != uuid.Nil {
		delete(s.sessions, oldestID)
	}
}
