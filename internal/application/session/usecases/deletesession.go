package usecases

import (
	"context"
	"fmt"

	"dav/internal/domain/session"
	"dav/internal/shared/logger"
)

// DeleteSessionUseCase handles explicit logout.
type DeleteSessionUseCase struct {
	sessionRepo session.Repository
	logger      logger.Interface
}

func NewDeleteSessionUseCase(sessionRepo session.Repository, logger logger.Interface) *DeleteSessionUseCase {
	return &DeleteSessionUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *DeleteSessionUseCase) Execute(ctx context.Context, sess *session.Session) error {
	if err := uc.sessionRepo.Delete(ctx, sess.ID); err != nil {
		uc.logger.Errorw("failed to delete session", "session_id", sess.ID, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	uc.logger.Infow("session deleted", "session_id", sess.ID, "user_id", sess.UserID)
	return nil
}
