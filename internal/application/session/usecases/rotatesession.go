package usecases

import (
	"context"
	"fmt"

	"dav/internal/domain/session"
	"dav/internal/shared/logger"
)

// RotateSessionUseCase renews a session's bearer token: the current token
// moves into the old-token slot and a fresh token is minted.
type RotateSessionUseCase struct {
	sessionRepo session.Repository
	logger      logger.Interface
}

func NewRotateSessionUseCase(sessionRepo session.Repository, logger logger.Interface) *RotateSessionUseCase {
	return &RotateSessionUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute rotates the token and persists the session in a single row update.
func (uc *RotateSessionUseCase) Execute(ctx context.Context, sess *session.Session) (*session.Session, error) {
	if err := sess.Renew(); err != nil {
		return nil, fmt.Errorf("failed to renew session: %w", err)
	}

	if err := uc.sessionRepo.Update(ctx, sess); err != nil {
		uc.logger.Errorw("failed to persist renewed session", "session_id", sess.ID, "error", err)
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	uc.logger.Infow("session renewed", "session_id", sess.ID, "user_id", sess.UserID)
	return sess, nil
}
