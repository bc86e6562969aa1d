package service

import (
	"context"
	"time"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/contract"
)

// ISessionService manages session lifecycle: create starts the TTL clock,
// delete tears the session down together with everything it owns.
type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	Delete(ctx context.Context, sessionId string) error
}

type sessionService struct {
	sessionRepo contract.ISessionRepository
	sessionTTL  time.Duration
	logger      logger.ILogger
}

func NewSessionService(sessionRepo contract.ISessionRepository, sessionTTL time.Duration, logger logger.ILogger) ISessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (s *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	sessionId, err := s.sessionRepo.Create(ctx, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("session", "session created", map[string]interface{}{
		"session_id": sessionId,
		"ttl":        s.sessionTTL.String(),
	})

	return &dto.CreateSessionResponse{SessionId: sessionId}, nil
}

// Delete is idempotent at this boundary: deleting a session that is already
// gone is a success.
func (s *sessionService) Delete(ctx context.Context, sessionId string) error {
	if err := s.sessionRepo.Delete(ctx, sessionId); err != nil {
		return err
	}

	s.logger.Info("session", "session deleted", map[string]interface{}{
		"session_id": sessionId,
	})
	return nil
}
