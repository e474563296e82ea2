package usecases

import (
	"context"
	"fmt"
	"time"

	"dav/internal/domain/session"
	"dav/internal/shared/errors"
	"dav/internal/shared/logger"
)

// ResolveSessionUseCase authenticates a bearer session token, detecting
// replays of rotated-out tokens and, in production mode, enforcing the
// renewal window.
type ResolveSessionUseCase struct {
	sessionRepo    session.Repository
	renewalWindow  time.Duration
	enforceRenewal bool
	logger         logger.Interface
}

// NewResolveSessionUseCase creates the use case. enforceRenewal is true only
// in the production deployment mode; other modes never expire sessions this
// way.
func NewResolveSessionUseCase(
	sessionRepo session.Repository,
	renewalWindow time.Duration,
	enforceRenewal bool,
	logger logger.Interface,
) *ResolveSessionUseCase {
	if renewalWindow <= 0 {
		renewalWindow = session.DefaultRenewalWindow
	}
	return &ResolveSessionUseCase{
		sessionRepo:    sessionRepo,
		renewalWindow:  renewalWindow,
		enforceRenewal: enforceRenewal,
		logger:         logger,
	}
}

// Execute resolves the token to a session. A token matching some session's
// old token means a rotated-out token was replayed: the session is destroyed
// on the spot and a distinct error is returned so clients can tell
// revocation-due-to-compromise apart from plain invalidity.
func (uc *ResolveSessionUseCase) Execute(ctx context.Context, token string, checkRenewal bool) (*session.Session, error) {
	sess, err := uc.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		uc.logger.Errorw("failed to get session by token", "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if sess == nil {
		replayed, err := uc.sessionRepo.GetByOldToken(ctx, token)
		if err != nil {
			uc.logger.Errorw("failed to get session by old token", "error", err)
			return nil, fmt.Errorf("failed to get session: %w", err)
		}
		if replayed != nil {
			if err := uc.sessionRepo.Delete(ctx, replayed.ID); err != nil {
				uc.logger.Errorw("failed to delete replayed session", "session_id", replayed.ID, "error", err)
				return nil, fmt.Errorf("failed to delete session: %w", err)
			}
			uc.logger.Warnw("old session token replayed, session destroyed",
				"session_id", replayed.ID, "user_id", replayed.UserID)
			return nil, errors.NewOldTokenUsedError()
		}
		return nil, errors.NewSessionDoesNotExistError()
	}

	if checkRenewal && uc.enforceRenewal && sess.NeedsRenewal(uc.renewalWindow) {
		return nil, errors.NewSessionEndedError()
	}

	return sess, nil
}
