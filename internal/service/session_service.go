package service

import (
	"context"
	"errors"

	"text-summarizer-be/internal/pkg/logger"
	"text-summarizer-be/internal/repository/contract"
	"text-summarizer-be/pkg/store"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context) (*store.Session, error)
	// Load returns the stored session, or a fresh empty one under the same ID when it expired.
	Load(ctx context.Context, sessionId string) (*store.Session, error)
	Save(ctx context.Context, session *store.Session) error
	Reset(ctx context.Context, sessionId string) (*store.Session, error)
	Delete(ctx context.Context, sessionId string) error
}

type sessionService struct {
	repo contract.ISessionRepository
	log  logger.ILogger
}

func NewSessionService(repo contract.ISessionRepository, log logger.ILogger) ISessionService {
	return &sessionService{repo: repo, log: log}
}

func (s *sessionService) Create(ctx context.Context) (*store.Session, error) {
	session := store.NewSession(uuid.NewString())
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.log.Debug("SessionService", "session created", map[string]interface{}{"session_id": session.ID})
	return session, nil
}

func (s *sessionService) Load(ctx context.Context, sessionId string) (*store.Session, error) {
	session, err := s.repo.Get(ctx, sessionId)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, contract.ErrSessionNotFound) {
		return nil, err
	}

	s.log.Debug("SessionService", "session expired, starting empty", map[string]interface{}{"session_id": sessionId})
	session = store.NewSession(sessionId)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Save(ctx context.Context, session *store.Session) error {
	return s.repo.Save(ctx, session)
}

func (s *sessionService) Reset(ctx context.Context, sessionId string) (*store.Session, error) {
	session, err := s.Load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	session.Reset()
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Delete(ctx context.Context, sessionId string) error {
	return s.repo.Delete(ctx, sessionId)
}
