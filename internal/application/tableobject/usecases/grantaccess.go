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

// GrantAccessCommand requests a sharing grant on a table object for the
// session's user. A non-nil TableAlias makes the object appear under that
// table id for the grantee.
type GrantAccessCommand struct {
	UUID       string
	TableAlias *uint
}

// GrantAccessUseCase creates a sharing grant. Granting is idempotent: an
// existing grant for the same (object, user) pair is returned unchanged.
// The object's owner is not required to match the session; the grant is what
// makes a foreign object reachable in the first place.
type GrantAccessUseCase struct {
	objectRepo tableobject.Repository
	tableRepo  tableobject.TableRepository
	accessRepo tableobject.UserAccessRepository
	userRepo   user.Repository
	propagator *services.ChangePropagator
	logger     logger.Interface
}

func NewGrantAccessUseCase(
	objectRepo tableobject.Repository,
	tableRepo tableobject.TableRepository,
	accessRepo tableobject.UserAccessRepository,
	userRepo user.Repository,
	propagator *services.ChangePropagator,
	logger logger.Interface,
) *GrantAccessUseCase {
	return &GrantAccessUseCase{
		objectRepo: objectRepo,
		tableRepo:  tableRepo,
		accessRepo: accessRepo,
		userRepo:   userRepo,
		propagator: propagator,
		logger:     logger,
	}
}

func (uc *GrantAccessUseCase) Execute(ctx context.Context, sess *session.Session, cmd GrantAccessCommand) (*tableobject.UserAccess, error) {
	obj, err := uc.objectRepo.GetByUUID(ctx, cmd.UUID)
	if err != nil {
		uc.logger.Errorw("failed to get table object", "uuid", cmd.UUID, "error", err)
		return nil, fmt.Errorf("failed to get table object: %w", err)
	}
	if obj == nil {
		return nil, errors.NewEntityNotFoundError(errors.CodeTableObjectDoesNotExist, "Table object does not exist")
	}

	if cmd.TableAlias != nil {
		aliasTable, err := uc.tableRepo.GetByID(ctx, *cmd.TableAlias)
		if err != nil {
			uc.logger.Errorw("failed to get alias table", "table_id", *cmd.TableAlias, "error", err)
			return nil, fmt.Errorf("failed to get table: %w", err)
		}
		if aliasTable == nil {
			return nil, errors.NewEntityNotFoundError(errors.CodeTableDoesNotExist, "Table does not exist")
		}
	}

	existing, err := uc.accessRepo.GetByObjectAndUser(ctx, obj.ID, sess.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user access", "uuid", cmd.UUID, "error", err)
		return nil, fmt.Errorf("failed to get user access: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	access := &tableobject.UserAccess{
		TableObjectID: obj.ID,
		UserID:        sess.UserID,
		TableAlias:    cmd.TableAlias,
		CreatedAt:     biztime.NowUTC(),
	}
	if err := uc.accessRepo.Create(ctx, access); err != nil {
		uc.logger.Errorw("failed to create user access", "uuid", cmd.UUID, "error", err)
		return nil, fmt.Errorf("failed to create user access: %w", err)
	}

	if err := uc.userRepo.UpdateLastActive(ctx, sess.UserID, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("failed to update last active", "user_id", sess.UserID, "error", err)
	}

	// Sharing changes what the owner's table membership looks like to the
	// grantee's clients; bump the owner's table version so they re-fetch.
	if _, err := uc.propagator.BumpTableEtag(ctx, obj.UserID, obj.TableID); err != nil {
		uc.logger.Errorw("failed to bump table etag", "uuid", cmd.UUID, "error", err)
		return nil, fmt.Errorf("failed to bump table etag: %w", err)
	}

	uc.logger.Infow("user access granted", "uuid", cmd.UUID, "user_id", sess.UserID)
	return access, nil
}
