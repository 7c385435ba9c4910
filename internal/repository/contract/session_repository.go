package contract

import (
	"context"
	"errors"

	"text-summarizer-be/pkg/store"
)

var ErrSessionNotFound = errors.New("session not found")

type ISessionRepository interface {
	Save(ctx context.Context, session *store.Session) error
	// Get returns ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, sessionID string) (*store.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
