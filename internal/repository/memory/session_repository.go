package memory

import (
	"time"

	"docedit-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps edit sessions in process memory. A session expires
// after ttl without access; the ledger of an expired session is gone.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	cleanup := ttl / 6
	if cleanup < time.Second {
		cleanup = time.Second
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

// OnExpired registers a callback for sessions dropped by the TTL or deleted.
func (r *SessionRepository) OnExpired(fn func(session *store.EditSession)) {
	r.cache.OnEvicted(func(_ string, v interface{}) {
		if s, ok := v.(*store.EditSession); ok {
			fn(s)
		}
	})
}

func (r *SessionRepository) Save(session *store.EditSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

// Get returns the session and extends its lifetime.
func (r *SessionRepository) Get(sessionID string) (*store.EditSession, bool) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, false
	}
	session := x.(*store.EditSession)
	r.cache.Set(sessionID, session, cache.DefaultExpiration)
	return session, true
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// CountByUser returns how many sessions the user has open.
func (r *SessionRepository) CountByUser(userID uuid.UUID) int {
	n := 0
	for _, item := range r.cache.Items() {
		if s, ok := item.Object.(*store.EditSession); ok && s.UserID == userID {
			n++
		}
	}
	return n
}

// Len counts live sessions, including expired ones not yet cleaned up.
func (r *SessionRepository) Len() int {
	return r.cache.ItemCount()
}
