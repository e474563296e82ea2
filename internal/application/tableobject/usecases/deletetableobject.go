package usecases

import (
	"context"
	"fmt"

	"dav/internal/application/tableobject/services"
	"dav/internal/domain/session"
	"dav/internal/domain/tableobject"
	"dav/internal/domain/user"
	"dav/internal/shared/biztime"
	"dav/internal/shared/logger"
)

// DeleteTableObjectUseCase removes an object with its properties, then
// propagates: the owner's table version bumps and the cached snapshot and
// shadow keys go away.
type DeleteTableObjectUseCase struct {
	checkAccess *CheckAccessUseCase
	objectRepo  tableobject.Repository
	userRepo    user.Repository
	propagator  *services.ChangePropagator
	logger      logger.Interface
}

func NewDeleteTableObjectUseCase(
	checkAccess *CheckAccessUseCase,
	objectRepo tableobject.Repository,
	userRepo user.Repository,
	propagator *services.ChangePropagator,
	logger logger.Interface,
) *DeleteTableObjectUseCase {
	return &DeleteTableObjectUseCase{
		checkAccess: checkAccess,
		objectRepo:  objectRepo,
		userRepo:    userRepo,
		propagator:  propagator,
		logger:      logger,
	}
}

func (uc *DeleteTableObjectUseCase) Execute(ctx context.Context, sess *session.Session, uuid string) error {
	resolution, err := uc.checkAccess.Execute(ctx, sess, uuid)
	if err != nil {
		return err
	}
	obj := resolution.Object

	if err := uc.objectRepo.Delete(ctx, obj.ID); err != nil {
		uc.logger.Errorw("failed to delete table object", "uuid", uuid, "error", err)
		return fmt.Errorf("failed to delete table object: %w", err)
	}

	if _, err := uc.propagator.BumpTableEtag(ctx, obj.UserID, obj.TableID); err != nil {
		uc.logger.Errorw("failed to bump table etag", "uuid", uuid, "error", err)
		return fmt.Errorf("failed to bump table etag: %w", err)
	}
	uc.propagator.RemoveFromCache(ctx, obj.UUID)

	if err := uc.userRepo.UpdateLastActive(ctx, sess.UserID, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("failed to update last active", "user_id", sess.UserID, "error", err)
	}

	uc.logger.Infow("table object deleted", "uuid", uuid)
	return nil
}
