package usecases

import (
	"context"
	"fmt"

	"dav/internal/application/tableobject/services"
	"dav/internal/domain/session"
	"dav/internal/domain/tableobject"
	"dav/internal/domain/user"
	"dav/internal/shared/biztime"
	"dav/internal/shared/errors"
	"dav/internal/shared/logger"
)

// RevokeAccessUseCase removes the session user's sharing grant on a table
// object. Unlike granting, revocation is app-scoped: the session's app must
// own the object's table.
type RevokeAccessUseCase struct {
	objectRepo tableobject.Repository
	tableRepo  tableobject.TableRepository
	accessRepo tableobject.UserAccessRepository
	userRepo   user.Repository
	propagator *services.ChangePropagator
	logger     logger.Interface
}

func NewRevokeAccessUseCase(
	objectRepo tableobject.Repository,
	tableRepo tableobject.TableRepository,
	accessRepo tableobject.UserAccessRepository,
	userRepo user.Repository,
	propagator *services.ChangePropagator,
	logger logger.Interface,
) *RevokeAccessUseCase {
	return &RevokeAccessUseCase{
		objectRepo: objectRepo,
		tableRepo:  tableRepo,
		accessRepo: accessRepo,
		userRepo:   userRepo,
		propagator: propagator,
		logger:     logger,
	}
}

func (uc *RevokeAccessUseCase) Execute(ctx context.Context, sess *session.Session, uuid string) error {
	obj, err := uc.objectRepo.GetByUUID(ctx, uuid)
	if err != nil {
		uc.logger.Errorw("failed to get table object", "uuid", uuid, "error", err)
		return fmt.Errorf("failed to get table object: %w", err)
	}
	if obj == nil {
		return errors.NewEntityNotFoundError(errors.CodeTableObjectDoesNotExist, "Table object does not exist")
	}

	table, err := uc.tableRepo.GetByID(ctx, obj.TableID)
	if err != nil {
		uc.logger.Errorw("failed to get table", "table_id", obj.TableID, "error", err)
		return fmt.Errorf("failed to get table: %w", err)
	}
	if table == nil {
		return errors.NewEntityNotFoundError(errors.CodeTableDoesNotExist, "Table does not exist")
	}
	if table.AppID != sess.AppID {
		return errors.NewActionNotAllowedError()
	}

	access, err := uc.accessRepo.GetByObjectAndUser(ctx, obj.ID, sess.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user access", "uuid", uuid, "error", err)
		return fmt.Errorf("failed to get user access: %w", err)
	}
	if access == nil {
		return errors.NewEntityNotFoundError(errors.CodeTableObjectUserAccessMissing, "Table object user access does not exist")
	}

	if err := uc.accessRepo.Delete(ctx, access.ID); err != nil {
		uc.logger.Errorw("failed to delete user access", "uuid", uuid, "error", err)
		return fmt.Errorf("failed to delete user access: %w", err)
	}

	if err := uc.userRepo.UpdateLastActive(ctx, sess.UserID, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("failed to update last active", "user_id", sess.UserID, "error", err)
	}

	if _, err := uc.propagator.BumpTableEtag(ctx, obj.UserID, obj.TableID); err != nil {
		uc.logger.Errorw("failed to bump table etag", "uuid", uuid, "error", err)
		return fmt.Errorf("failed to bump table etag: %w", err)
	}

	uc.logger.Infow("user access revoked", "uuid", uuid, "user_id", sess.UserID)
	return nil
}
