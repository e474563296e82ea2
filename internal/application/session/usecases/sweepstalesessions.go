package usecases

import (
	"context"
	"fmt"

	"dav/internal/domain/session"
	"dav/internal/shared/biztime"
	"dav/internal/shared/logger"
)

// SweepStaleSessionsUseCase deletes sessions that have not proven liveness in
// a long time. Run by the worker on a fixed interval.
type SweepStaleSessionsUseCase struct {
	sessionRepo session.Repository
	logger      logger.Interface
}

func NewSweepStaleSessionsUseCase(sessionRepo session.Repository, logger logger.Interface) *SweepStaleSessionsUseCase {
	return &SweepStaleSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *SweepStaleSessionsUseCase) Execute(ctx context.Context) error {
	cutoff := biztime.NowUTC().Add(-session.StaleAge)

	deleted, err := uc.sessionRepo.DeleteStale(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to sweep stale sessions", "error", err)
		return fmt.Errorf("failed to sweep stale sessions: %w", err)
	}

	if deleted > 0 {
		uc.logger.Infow("stale sessions swept", "count", deleted, "cutoff", cutoff)
	}
	return nil
}
