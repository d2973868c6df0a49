package repository

import (
	"sync"
	"time"

	"ai-library-be/internal/pkg/logger"
	"ai-library-be/internal/repository/contract"
	"ai-library-be/internal/repository/file"
	"ai-library-be/pkg/store"
)

// SessionStore is the write-through session layer: a memory cache in
// front of durable per-session files. Every append flushes so the
// conversation survives a restart between turns. A persistence failure
// is logged and swallowed; the in-memory session stays authoritative for
// the rest of the process lifetime.
type SessionStore struct {
	mu          sync.Mutex // guards lookup-or-create
	cache       contract.SessionCache
	persistence contract.SessionPersistence
	log         logger.ILogger
	now         func() time.Time
}

func NewSessionStore(cache contract.SessionCache, persistence contract.SessionPersistence, log logger.ILogger) *SessionStore {
	return &SessionStore{
		cache:       cache,
		persistence: persistence,
		log:         log,
		now:         time.Now,
	}
}

// GetOrCreate returns the session for the id, loading it from disk on a
// cache miss and creating it on first reference. The id is sanitized
// before use as a storage key.
func (s *SessionStore) GetOrCreate(sessionID string) *store.Session {
	id := file.SanitizeID(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.cache.Get(id); ok {
		return session
	}

	session, err := s.persistence.Load(id)
	if err != nil {
		s.log.Error("SESSION_STORE", "failed to load session, starting fresh", map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		})
	}
	if session == nil {
		session = &store.Session{ID: id}
	}

	s.cache.Save(session)
	return session
}

// Append adds a message and immediately persists the session.
func (s *SessionStore) Append(session *store.Session, role, text string) {
	session.History = append(session.History, store.Message{
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	})
	s.flush(session)
}

// SetLastResults records the books of the most recent successful catalog
// search. Only the search path calls this; follow-ups just read.
func (s *SessionStore) SetLastResults(session *store.Session, books []store.Book) {
	session.LastResults = books
	s.flush(session)
}

// Clear removes a session from memory and disk.
func (s *SessionStore) Clear(sessionID string) error {
	id := file.SanitizeID(sessionID)
	s.cache.Delete(id)
	return s.persistence.Delete(id)
}

func (s *SessionStore) flush(session *store.Session) {
	s.cache.Save(session)
	if err := s.persistence.Save(session); err != nil {
		// Durability is best-effort, the current turn is not.
		s.log.Error("SESSION_STORE", "failed to persist session", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}
}
