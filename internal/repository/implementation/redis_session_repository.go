package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"text-summarizer-be/internal/repository/contract"
	"text-summarizer-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "summarizer:session:"

type redisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSessionRepository stores sessions as JSON with a sliding TTL, so several
// processes behind a load balancer see the same state.
func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) contract.ISessionRepository {
	return &redisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *redisSessionRepository) Save(ctx context.Context, session *store.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKeyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

func (r *redisSessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	data, err := r.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, contract.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
