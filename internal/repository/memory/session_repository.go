package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"ai-library-be/pkg/store"
)

const defaultTTL = 1 * time.Hour

// SessionRepository keeps hot sessions in memory so a chat turn does not
// round-trip through the durable store. Entries expire after ttl of
// inactivity; the durable store reloads anything evicted.
type SessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewSessionRepository builds the hot-session cache. A non-positive ttl
// falls back to one hour.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionRepository{
		cache: cache.New(ttl, ttl/4),
		ttl:   ttl,
	}
}

// Save stores the session and refreshes its expiry window.
func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, r.ttl)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
