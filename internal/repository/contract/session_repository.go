package contract

import "ai-library-be/pkg/store"

// SessionCache is the in-memory front for hot sessions.
type SessionCache interface {
	Save(session *store.Session)
	Get(sessionID string) (*store.Session, bool)
	Delete(sessionID string)
}

// SessionPersistence is the durable backing store, one record per
// sanitized session id.
type SessionPersistence interface {
	Save(session *store.Session) error
	Load(sessionID string) (*store.Session, error) // nil, nil when absent
	Delete(sessionID string) error
}
