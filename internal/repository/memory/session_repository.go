package memory

import (
	"context"
	"time"

	"text-summarizer-be/internal/repository/contract"
	"text-summarizer-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions for ttl since their last save and purges expired
// items every cleanupInterval.
func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *SessionRepository) Save(_ context.Context, session *store.Session) error {
	// store a copy so callers cannot mutate cached state behind our back
	cp := *session
	r.cache.Set(session.ID, &cp, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, sessionID string) (*store.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		cp := *x.(*store.Session)
		return &cp, nil
	}
	return nil, contract.ErrSessionNotFound
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}
