package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"dav/internal/application/tableobject/services"
	"dav/internal/domain/session"
	"dav/internal/domain/tableobject"
	"dav/internal/domain/user"
	"dav/internal/shared/biztime"
	"dav/internal/shared/constants"
	"dav/internal/shared/errors"
	"dav/internal/shared/logger"
)

// transactionRunner is the slice of the transaction manager the use cases
// need. Repositories pick the transaction up from the context.
type transactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreateTableObjectCommand carries a new object. UUID is optional; when empty
// the server assigns one. Properties map property names to tagged values.
type CreateTableObjectCommand struct {
	UUID       string
	TableID    uint
	File       bool
	Properties map[string]tableobject.Value
}

// CreateTableObjectUseCase creates a table object owned by the session's
// user. The object and its properties commit in one transaction; etag
// computation, table versioning, and cache synchronization run after the
// commit so a cache outage can never fail the write.
type CreateTableObjectUseCase struct {
	objectRepo tableobject.Repository
	tableRepo  tableobject.TableRepository
	userRepo   user.Repository
	propagator *services.ChangePropagator
	tx         transactionRunner
	logger     logger.Interface
}

func NewCreateTableObjectUseCase(
	objectRepo tableobject.Repository,
	tableRepo tableobject.TableRepository,
	userRepo user.Repository,
	propagator *services.ChangePropagator,
	tx transactionRunner,
	logger logger.Interface,
) *CreateTableObjectUseCase {
	return &CreateTableObjectUseCase{
		objectRepo: objectRepo,
		tableRepo:  tableRepo,
		userRepo:   userRepo,
		propagator: propagator,
		tx:         tx,
		logger:     logger,
	}
}

func (uc *CreateTableObjectUseCase) Execute(ctx context.Context, sess *session.Session, cmd CreateTableObjectCommand) (*tableobject.TableObject, error) {
	if err := validateObjectInput(cmd.UUID, cmd.Properties); err != nil {
		return nil, err
	}

	table, err := uc.tableRepo.GetByID(ctx, cmd.TableID)
	if err != nil {
		uc.logger.Errorw("failed to get table", "table_id", cmd.TableID, "error", err)
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	if table == nil {
		return nil, errors.NewEntityNotFoundError(errors.CodeTableDoesNotExist, "Table does not exist")
	}
	if table.AppID != sess.AppID {
		return nil, errors.NewActionNotAllowedError()
	}

	objectUUID := cmd.UUID
	if objectUUID == "" {
		objectUUID = uuid.NewString()
	} else {
		exists, err := uc.objectRepo.ExistsByUUID(ctx, objectUUID)
		if err != nil {
			uc.logger.Errorw("failed to check uuid", "uuid", objectUUID, "error", err)
			return nil, fmt.Errorf("failed to check uuid: %w", err)
		}
		if exists {
			return nil, errors.NewUUIDAlreadyInUseError()
		}
	}

	obj := &tableobject.TableObject{
		UUID:      objectUUID,
		UserID:    sess.UserID,
		TableID:   cmd.TableID,
		File:      cmd.File,
		CreatedAt: biztime.NowUTC(),
		UpdatedAt: biztime.NowUTC(),
	}

	// Property rows are written in sorted name order so the insertion order,
	// and with it the etag, is deterministic for a given property set.
	names := sortedNames(cmd.Properties)

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.objectRepo.Create(txCtx, obj); err != nil {
			return fmt.Errorf("failed to create table object: %w", err)
		}
		for _, name := range names {
			value := cmd.Properties[name]
			if value.Raw == "" {
				continue
			}
			if err := uc.objectRepo.UpsertProperty(txCtx, obj.ID, name, value.Raw); err != nil {
				return fmt.Errorf("failed to save property %q: %w", name, err)
			}
			if err := uc.propagator.RegisterPropertyType(txCtx, cmd.TableID, name, value); err != nil {
				return fmt.Errorf("failed to register property type %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create table object", "uuid", objectUUID, "error", err)
		return nil, err
	}

	if _, err := uc.propagator.RecomputeObjectEtag(ctx, obj); err != nil {
		uc.logger.Errorw("failed to compute object etag", "uuid", objectUUID, "error", err)
		return nil, err
	}
	if _, err := uc.propagator.BumpTableEtag(ctx, obj.UserID, obj.TableID); err != nil {
		uc.logger.Errorw("failed to bump table etag", "uuid", objectUUID, "error", err)
		return nil, err
	}
	uc.propagator.SyncCache(ctx, obj)

	if err := uc.userRepo.UpdateLastActive(ctx, sess.UserID, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("failed to update last active", "user_id", sess.UserID, "error", err)
	}

	uc.logger.Infow("table object created", "uuid", objectUUID, "table_id", cmd.TableID)
	return obj, nil
}

// validateObjectInput aggregates every violation into one validation error
// instead of reporting the first.
func validateObjectInput(objectUUID string, properties map[string]tableobject.Value) error {
	var details []string

	if objectUUID != "" {
		if _, err := uuid.Parse(objectUUID); err != nil {
			details = append(details, "uuid must be a valid UUID")
		}
	}
	for name, value := range properties {
		if name == "" {
			details = append(details, "property name must not be empty")
		} else if len(name) > constants.MaxPropertyNameLength {
			details = append(details, fmt.Sprintf("property name %q exceeds %d characters", name, constants.MaxPropertyNameLength))
		} else if strings.Contains(name, ":") {
			details = append(details, fmt.Sprintf("property name %q must not contain ':'", name))
		}
		if value.Kind == tableobject.DataTypeUnsupported {
			details = append(details, fmt.Sprintf("property %q must be a string, boolean, number, or null", name))
		}
	}

	if len(details) == 0 {
		return nil
	}
	sort.Strings(details)
	return errors.NewValidationError("Validation failed").WithDetails(details...)
}

func sortedNames(properties map[string]tableobject.Value) []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
