package usecases

import (
	"context"
	"fmt"

	"dav/internal/application/tableobject/services"
	"dav/internal/domain/session"
	"dav/internal/domain/tableobject"
	"dav/internal/domain/user"
	"dav/internal/shared/biztime"
	"dav/internal/shared/constants"
	"dav/internal/shared/errors"
	"dav/internal/shared/logger"
)

// CompleteFileUploadCommand records the outcome of a finished blob upload on
// a file-backed object.
type CompleteFileUploadCommand struct {
	UUID        string
	Size        int64
	ContentType string
	FileEtag    string
}

// CompleteFileUploadUseCase stamps file metadata onto a file-backed object
// through its reserved property names. Only the owner acting through the
// owning app may complete an upload; sharing grants do not extend to the
// blob lifecycle.
type CompleteFileUploadUseCase struct {
	objectRepo tableobject.Repository
	tableRepo  tableobject.TableRepository
	userRepo   user.Repository
	propagator *services.ChangePropagator
	tx         transactionRunner
	logger     logger.Interface
}

func NewCompleteFileUploadUseCase(
	objectRepo tableobject.Repository,
	tableRepo tableobject.TableRepository,
	userRepo user.Repository,
	propagator *services.ChangePropagator,
	tx transactionRunner,
	logger logger.Interface,
) *CompleteFileUploadUseCase {
	return &CompleteFileUploadUseCase{
		objectRepo: objectRepo,
		tableRepo:  tableRepo,
		userRepo:   userRepo,
		propagator: propagator,
		tx:         tx,
		logger:     logger,
	}
}

func (uc *CompleteFileUploadUseCase) Execute(ctx context.Context, sess *session.Session, cmd CompleteFileUploadCommand) (*tableobject.TableObject, error) {
	obj, err := uc.objectRepo.GetByUUID(ctx, cmd.UUID)
	if err != nil {
		uc.logger.Errorw("failed to get table object", "uuid", cmd.UUID, "error", err)
		return nil, fmt.Errorf("failed to get table object: %w", err)
	}
	if obj == nil {
		return nil, errors.NewEntityNotFoundError(errors.CodeTableObjectDoesNotExist, "Table object does not exist")
	}

	table, err := uc.tableRepo.GetByID(ctx, obj.TableID)
	if err != nil {
		uc.logger.Errorw("failed to get table", "table_id", obj.TableID, "error", err)
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	if table == nil {
		return nil, errors.NewEntityNotFoundError(errors.CodeTableDoesNotExist, "Table does not exist")
	}
	if obj.UserID != sess.UserID || table.AppID != sess.AppID {
		return nil, errors.NewActionNotAllowedError()
	}

	if !obj.File {
		return nil, &errors.AppError{
			Type:    errors.ErrorTypeValidation,
			APICode: errors.CodeTableObjectIsNotFile,
			Message: "Table object is not a file",
			Code:    422,
		}
	}

	metadata := map[string]tableobject.Value{
		constants.SizePropertyName: tableobject.IntValue(cmd.Size),
		constants.TypePropertyName: tableobject.StringValue(cmd.ContentType),
		constants.EtagPropertyName: tableobject.StringValue(cmd.FileEtag),
	}
	names := sortedNames(metadata)

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, name := range names {
			value := metadata[name]
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
		uc.logger.Errorw("failed to save file metadata", "uuid", cmd.UUID, "error", err)
		return nil, err
	}

	if _, err := uc.propagator.RecomputeObjectEtag(ctx, obj); err != nil {
		uc.logger.Errorw("failed to compute object etag", "uuid", cmd.UUID, "error", err)
		return nil, err
	}
	if _, err := uc.propagator.BumpTableEtag(ctx, obj.UserID, obj.TableID); err != nil {
		uc.logger.Errorw("failed to bump table etag", "uuid", cmd.UUID, "error", err)
		return nil, err
	}
	uc.propagator.SyncCache(ctx, obj)

	if err := uc.userRepo.UpdateLastActive(ctx, sess.UserID, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("failed to update last active", "user_id", sess.UserID, "error", err)
	}

	uc.logger.Infow("file upload completed", "uuid", cmd.UUID, "size", cmd.Size)
	return obj, nil
}
