// Package usecases contains the table-object application services: access
// resolution, CRUD, sharing grants, and file upload completion.
package usecases

import (
	"context"
	"fmt"

	"dav/internal/domain/session"
	"dav/internal/domain/tableobject"
	"dav/internal/shared/errors"
	"dav/internal/shared/logger"
)

// AccessResolution is the outcome of resolving a session's rights on a table
// object. EffectiveTableID is the table id the object should be presented
// under: the native table id for owners, or the grant's alias when one is set.
type AccessResolution struct {
	Object           *tableobject.TableObject
	EffectiveTableID uint
	ViaGrant         bool
}

// CheckAccessUseCase decides whether a session may act on a table object.
// A sharing grant is consulted first and bypasses both the ownership and the
// app-scoping checks; without one, the session must belong to the object's
// owner and to the app owning the object's table.
type CheckAccessUseCase struct {
	objectRepo tableobject.Repository
	tableRepo  tableobject.TableRepository
	accessRepo tableobject.UserAccessRepository
	logger     logger.Interface
}

func NewCheckAccessUseCase(
	objectRepo tableobject.Repository,
	tableRepo tableobject.TableRepository,
	accessRepo tableobject.UserAccessRepository,
	logger logger.Interface,
) *CheckAccessUseCase {
	return &CheckAccessUseCase{
		objectRepo: objectRepo,
		tableRepo:  tableRepo,
		accessRepo: accessRepo,
		logger:     logger,
	}
}

func (uc *CheckAccessUseCase) Execute(ctx context.Context, sess *session.Session, uuid string) (*AccessResolution, error) {
	obj, err := uc.objectRepo.GetByUUID(ctx, uuid)
	if err != nil {
		uc.logger.Errorw("failed to get table object", "uuid", uuid, "error", err)
		return nil, fmt.Errorf("failed to get table object: %w", err)
	}
	if obj == nil {
		return nil, errors.NewEntityNotFoundError(errors.CodeTableObjectDoesNotExist, "Table object does not exist")
	}

	grant, err := uc.accessRepo.GetByObjectAndUser(ctx, obj.ID, sess.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user access", "uuid", uuid, "error", err)
		return nil, fmt.Errorf("failed to get user access: %w", err)
	}

	if grant != nil {
		effective := obj.TableID
		if grant.TableAlias != nil {
			effective = *grant.TableAlias
		}
		return &AccessResolution{Object: obj, EffectiveTableID: effective, ViaGrant: true}, nil
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

	return &AccessResolution{Object: obj, EffectiveTableID: obj.TableID}, nil
}
