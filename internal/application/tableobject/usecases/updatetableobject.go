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

// UpdateTableObjectCommand carries a property patch. Values with an empty Raw
// delete the property; everything else is created or overwritten. Properties
// not named are left untouched.
type UpdateTableObjectCommand struct {
	UUID       string
	Properties map[string]tableobject.Value
}

// UpdateTableObjectUseCase patches an object's property bag. Access is
// resolved through the grant-aware check, so grantees can write to shared
// objects. The property type registry is keyed by the object's native table,
// not a grant alias.
type UpdateTableObjectUseCase struct {
	checkAccess *CheckAccessUseCase
	objectRepo  tableobject.Repository
	userRepo    user.Repository
	propagator  *services.ChangePropagator
	tx          transactionRunner
	logger      logger.Interface
}

func NewUpdateTableObjectUseCase(
	checkAccess *CheckAccessUseCase,
	objectRepo tableobject.Repository,
	userRepo user.Repository,
	propagator *services.ChangePropagator,
	tx transactionRunner,
	logger logger.Interface,
) *UpdateTableObjectUseCase {
	return &UpdateTableObjectUseCase{
		checkAccess: checkAccess,
		objectRepo:  objectRepo,
		userRepo:    userRepo,
		propagator:  propagator,
		tx:          tx,
		logger:      logger,
	}
}

// Execute applies the patch and returns the access resolution so callers can
// present the grant-effective table id, matching reads.
func (uc *UpdateTableObjectUseCase) Execute(ctx context.Context, sess *session.Session, cmd UpdateTableObjectCommand) (*AccessResolution, error) {
	if err := validateObjectInput("", cmd.Properties); err != nil {
		return nil, err
	}

	resolution, err := uc.checkAccess.Execute(ctx, sess, cmd.UUID)
	if err != nil {
		return nil, err
	}
	obj := resolution.Object

	names := sortedNames(cmd.Properties)

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, name := range names {
			value := cmd.Properties[name]
			if value.Raw == "" {
				if err := uc.objectRepo.DeleteProperty(txCtx, obj.ID, name); err != nil {
					return fmt.Errorf("failed to delete property %q: %w", name, err)
				}
				continue
			}
			if err := uc.objectRepo.UpsertProperty(txCtx, obj.ID, name, value.Raw); err != nil {
				return fmt.Errorf("failed to save property %q: %w", name, err)
			}
			if err := uc.propagator.RegisterPropertyType(txCtx, obj.TableID, name, value); err != nil {
				return fmt.Errorf("failed to register property type %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update table object", "uuid", cmd.UUID, "error", err)
		return nil, err
	}

	if _, err := uc.propagator.RecomputeObjectEtag(ctx, obj); err != nil {
		uc.logger.Errorw("failed to compute object etag", "uuid", cmd.UUID, "error", err)
		return nil, err
	}
	// The owner's table version changes no matter which session wrote.
	if _, err := uc.propagator.BumpTableEtag(ctx, obj.UserID, obj.TableID); err != nil {
		uc.logger.Errorw("failed to bump table etag", "uuid", cmd.UUID, "error", err)
		return nil, err
	}
	uc.propagator.SyncCache(ctx, obj)

	if err := uc.userRepo.UpdateLastActive(ctx, sess.UserID, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("failed to update last active", "user_id", sess.UserID, "error", err)
	}

	uc.logger.Infow("table object updated", "uuid", cmd.UUID)
	return resolution, nil
}
