package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dav/internal/domain/session"
	"dav/internal/domain/tableobject"
	"dav/internal/shared/errors"
)

func ownerUpdateSetup(t *testing.T) (*mockObjectRepository, *mockTableRepository, *mockAccessRepository, *tableobject.TableObject) {
	t.Helper()

	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	accessRepo := new(mockAccessRepository)

	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	accessRepo.On("GetByObjectAndUser", mock.Anything, uint(10), uint(2)).Return(nil, nil)
	tableRepo.On("GetByID", mock.Anything, uint(4)).Return(&tableobject.Table{ID: 4, AppID: 7}, nil)

	return objectRepo, tableRepo, accessRepo, obj
}

func TestUpdateTableObject_WritesAndDeletesProperties(t *testing.T) {
	objectRepo, tableRepo, accessRepo, _ := ownerUpdateSetup(t)
	userRepo := new(mockUserRepository)
	propagator, pm := newTestPropagator(objectRepo)

	remaining := []tableobject.Property{{ID: 1, TableObjectID: 10, Name: "title", Value: "updated"}}

	objectRepo.On("UpsertProperty", mock.Anything, uint(10), "title", "updated").Return(nil)
	objectRepo.On("DeleteProperty", mock.Anything, uint(10), "obsolete").Return(nil)
	objectRepo.On("GetProperties", mock.Anything, uint(10)).Return(remaining, nil)
	objectRepo.On("UpdateEtag", mock.Anything, uint(10), mock.Anything).Return(nil)
	pm.propertyTypeRepo.On("GetByTableAndName", mock.Anything, uint(4), "title").
		Return(&tableobject.PropertyType{TableID: 4, Name: "title", DataType: tableobject.DataTypeString}, nil)
	pm.propertyTypeRepo.On("ListByTable", mock.Anything, uint(4)).
		Return([]tableobject.PropertyType{{TableID: 4, Name: "title", DataType: tableobject.DataTypeString}}, nil)
	pm.expectTableEtagBump(2, 4)
	pm.cache.On("SaveObject", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	userRepo.On("UpdateLastActive", mock.Anything, uint(2), mock.Anything).Return(nil)

	checkAccess := NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, nopLogger{})
	uc := NewUpdateTableObjectUseCase(checkAccess, objectRepo, userRepo, propagator, passthroughTx{}, nopLogger{})

	res, err := uc.Execute(context.Background(), &session.Session{UserID: 2, AppID: 7}, UpdateTableObjectCommand{
		UUID: "obj-1",
		Properties: map[string]tableobject.Value{
			"title":    tableobject.StringValue("updated"),
			"obsolete": tableobject.StringValue(""),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, tableobject.ComputeObjectEtag("obj-1", remaining), res.Object.Etag)
	objectRepo.AssertCalled(t, "DeleteProperty", mock.Anything, uint(10), "obsolete")
	// Deletions never register a type.
	pm.propertyTypeRepo.AssertNotCalled(t, "GetByTableAndName", mock.Anything, uint(4), "obsolete")
}

func TestUpdateTableObject_RejectsNonScalarProperty(t *testing.T) {
	objectRepo, tableRepo, accessRepo, _ := ownerUpdateSetup(t)
	userRepo := new(mockUserRepository)
	propagator, _ := newTestPropagator(objectRepo)

	checkAccess := NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, nopLogger{})
	uc := NewUpdateTableObjectUseCase(checkAccess, objectRepo, userRepo, propagator, passthroughTx{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &session.Session{UserID: 2, AppID: 7}, UpdateTableObjectCommand{
		UUID: "obj-1",
		Properties: map[string]tableobject.Value{
			"count": {Kind: tableobject.DataTypeUnsupported},
		},
	})

	assert.True(t, errors.HasAPICode(err, errors.CodeValidationFailed))
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Details, `property "count" must be a string, boolean, number, or null`)
	// The existing property survives: the bad value never reaches the
	// delete path.
	objectRepo.AssertNotCalled(t, "DeleteProperty", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTableObject_GranteeSeesAliasTableID(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	accessRepo := new(mockAccessRepository)
	userRepo := new(mockUserRepository)
	propagator, pm := newTestPropagator(objectRepo)

	alias := uint(99)
	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	accessRepo.On("GetByObjectAndUser", mock.Anything, uint(10), uint(5)).
		Return(&tableobject.UserAccess{ID: 1, TableObjectID: 10, UserID: 5, TableAlias: &alias}, nil)

	objectRepo.On("UpsertProperty", mock.Anything, uint(10), "title", "v").Return(nil)
	objectRepo.On("GetProperties", mock.Anything, uint(10)).
		Return([]tableobject.Property{{ID: 1, TableObjectID: 10, Name: "title", Value: "v"}}, nil)
	objectRepo.On("UpdateEtag", mock.Anything, uint(10), mock.Anything).Return(nil)
	pm.propertyTypeRepo.On("GetByTableAndName", mock.Anything, uint(4), "title").Return(nil, nil)
	pm.propertyTypeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pm.propertyTypeRepo.On("ListByTable", mock.Anything, uint(4)).Return([]tableobject.PropertyType{}, nil)
	pm.expectTableEtagBump(2, 4)
	pm.cache.On("SaveObject", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	userRepo.On("UpdateLastActive", mock.Anything, uint(5), mock.Anything).Return(nil)

	checkAccess := NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, nopLogger{})
	uc := NewUpdateTableObjectUseCase(checkAccess, objectRepo, userRepo, propagator, passthroughTx{}, nopLogger{})

	res, err := uc.Execute(context.Background(), &session.Session{UserID: 5, AppID: 9}, UpdateTableObjectCommand{
		UUID:       "obj-1",
		Properties: map[string]tableobject.Value{"title": tableobject.StringValue("v")},
	})

	require.NoError(t, err)
	// The grantee writes under the alias, but the registry and etags follow
	// the native table and owner.
	assert.Equal(t, uint(99), res.EffectiveTableID)
	assert.True(t, res.ViaGrant)
	assert.Equal(t, uint(4), res.Object.TableID)
}

func TestUpdateTableObject_CacheFailureQueuesRetryWithoutFailingWrite(t *testing.T) {
	objectRepo, tableRepo, accessRepo, _ := ownerUpdateSetup(t)
	userRepo := new(mockUserRepository)
	propagator, pm := newTestPropagator(objectRepo)

	objectRepo.On("UpsertProperty", mock.Anything, uint(10), "title", "v").Return(nil)
	objectRepo.On("GetProperties", mock.Anything, uint(10)).
		Return([]tableobject.Property{{ID: 1, TableObjectID: 10, Name: "title", Value: "v"}}, nil)
	objectRepo.On("UpdateEtag", mock.Anything, uint(10), mock.Anything).Return(nil)
	pm.propertyTypeRepo.On("GetByTableAndName", mock.Anything, uint(4), "title").Return(nil, nil)
	pm.propertyTypeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pm.propertyTypeRepo.On("ListByTable", mock.Anything, uint(4)).Return([]tableobject.PropertyType{}, nil)
	pm.expectTableEtagBump(2, 4)
	pm.cache.On("SaveObject", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	pm.pendingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("UpdateLastActive", mock.Anything, uint(2), mock.Anything).Return(nil)

	checkAccess := NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, nopLogger{})
	uc := NewUpdateTableObjectUseCase(checkAccess, objectRepo, userRepo, propagator, passthroughTx{}, nopLogger{})

	res, err := uc.Execute(context.Background(), &session.Session{UserID: 2, AppID: 7}, UpdateTableObjectCommand{
		UUID:       "obj-1",
		Properties: map[string]tableobject.Value{"title": tableobject.StringValue("v")},
	})

	// The primary-store write succeeded; the cache outage is absorbed.
	require.NoError(t, err)
	assert.NotNil(t, res)
	pm.pendingRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(op *tableobject.PendingCacheOperation) bool {
		return op.UUID == "obj-1" && op.Kind == tableobject.CacheOperationSave
	}))
}

func TestDeleteTableObject(t *testing.T) {
	objectRepo, tableRepo, accessRepo, _ := ownerUpdateSetup(t)
	userRepo := new(mockUserRepository)
	propagator, pm := newTestPropagator(objectRepo)

	objectRepo.On("Delete", mock.Anything, uint(10)).Return(nil)
	pm.expectTableEtagBump(2, 4)
	pm.cache.On("DeleteObject", mock.Anything, "obj-1").Return(nil)
	userRepo.On("UpdateLastActive", mock.Anything, uint(2), mock.Anything).Return(nil)

	checkAccess := NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, nopLogger{})
	uc := NewDeleteTableObjectUseCase(checkAccess, objectRepo, userRepo, propagator, nopLogger{})

	err := uc.Execute(context.Background(), &session.Session{UserID: 2, AppID: 7}, "obj-1")

	require.NoError(t, err)
	objectRepo.AssertCalled(t, "Delete", mock.Anything, uint(10))
	pm.cache.AssertCalled(t, "DeleteObject", mock.Anything, "obj-1")
}

func TestDeleteTableObject_CacheFailureQueuesDelete(t *testing.T) {
	objectRepo, tableRepo, accessRepo, _ := ownerUpdateSetup(t)
	userRepo := new(mockUserRepository)
	propagator, pm := newTestPropagator(objectRepo)

	objectRepo.On("Delete", mock.Anything, uint(10)).Return(nil)
	pm.expectTableEtagBump(2, 4)
	pm.cache.On("DeleteObject", mock.Anything, "obj-1").Return(assert.AnError)
	pm.pendingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("UpdateLastActive", mock.Anything, uint(2), mock.Anything).Return(nil)

	checkAccess := NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, nopLogger{})
	uc := NewDeleteTableObjectUseCase(checkAccess, objectRepo, userRepo, propagator, nopLogger{})

	err := uc.Execute(context.Background(), &session.Session{UserID: 2, AppID: 7}, "obj-1")

	require.NoError(t, err)
	pm.pendingRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(op *tableobject.PendingCacheOperation) bool {
		return op.UUID == "obj-1" && op.Kind == tableobject.CacheOperationDelete
	}))
}
