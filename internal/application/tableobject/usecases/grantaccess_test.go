package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dav/internal/application/tableobject/services"
	"dav/internal/domain/session"
	"dav/internal/domain/tableobject"
	"dav/internal/shared/errors"
)

type propagatorMocks struct {
	objectRepo       *mockObjectRepository
	propertyTypeRepo *mockPropertyTypeRepository
	tableEtagRepo    *mockTableEtagRepository
	pendingRepo      *mockPendingRepository
	cache            *mockCache
}

func newTestPropagator(objectRepo *mockObjectRepository) (*services.ChangePropagator, *propagatorMocks) {
	m := &propagatorMocks{
		objectRepo:       objectRepo,
		propertyTypeRepo: new(mockPropertyTypeRepository),
		tableEtagRepo:    new(mockTableEtagRepository),
		pendingRepo:      new(mockPendingRepository),
		cache:            new(mockCache),
	}
	return services.NewChangePropagator(
		m.objectRepo, m.propertyTypeRepo, m.tableEtagRepo, m.pendingRepo, m.cache, nopLogger{},
	), m
}

// expectTableEtagBump wires the lazy-create path of a table etag bump.
func (m *propagatorMocks) expectTableEtagBump(userID, tableID uint) {
	m.tableEtagRepo.On("GetByUserAndTable", mock.Anything, userID, tableID).Return(nil, nil)
	m.tableEtagRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
}

func TestGrantAccess_CreatesGrantAndBumpsTableEtag(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	accessRepo := new(mockAccessRepository)
	userRepo := new(mockUserRepository)
	propagator, pm := newTestPropagator(objectRepo)

	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	accessRepo.On("GetByObjectAndUser", mock.Anything, uint(10), uint(99)).Return(nil, nil)
	accessRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("UpdateLastActive", mock.Anything, uint(99), mock.Anything).Return(nil)
	pm.expectTableEtagBump(2, 4)

	uc := NewGrantAccessUseCase(objectRepo, new(mockTableRepository), accessRepo, userRepo, propagator, nopLogger{})
	access, err := uc.Execute(context.Background(), &session.Session{UserID: 99, AppID: 42}, GrantAccessCommand{UUID: "obj-1"})

	require.NoError(t, err)
	assert.Equal(t, uint(10), access.TableObjectID)
	assert.Equal(t, uint(99), access.UserID)
	assert.Nil(t, access.TableAlias)
	// The bump targets the owner's (user, table) pair, not the grantee's.
	pm.tableEtagRepo.AssertCalled(t, "GetByUserAndTable", mock.Anything, uint(2), uint(4))
}

func TestGrantAccess_Idempotent(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	accessRepo := new(mockAccessRepository)
	propagator, pm := newTestPropagator(objectRepo)

	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	existing := &tableobject.UserAccess{ID: 5, TableObjectID: 10, UserID: 99}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	accessRepo.On("GetByObjectAndUser", mock.Anything, uint(10), uint(99)).Return(existing, nil)

	uc := NewGrantAccessUseCase(objectRepo, new(mockTableRepository), accessRepo, new(mockUserRepository), propagator, nopLogger{})
	access, err := uc.Execute(context.Background(), &session.Session{UserID: 99}, GrantAccessCommand{UUID: "obj-1"})

	require.NoError(t, err)
	assert.Equal(t, existing, access)
	accessRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	pm.tableEtagRepo.AssertNotCalled(t, "GetByUserAndTable", mock.Anything, mock.Anything, mock.Anything)
}

func TestGrantAccess_AliasTableMustExist(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	propagator, _ := newTestPropagator(objectRepo)

	alias := uint(77)
	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	tableRepo.On("GetByID", mock.Anything, uint(77)).Return(nil, nil)

	uc := NewGrantAccessUseCase(objectRepo, tableRepo, new(mockAccessRepository), new(mockUserRepository), propagator, nopLogger{})
	access, err := uc.Execute(context.Background(), &session.Session{UserID: 99}, GrantAccessCommand{UUID: "obj-1", TableAlias: &alias})

	assert.Nil(t, access)
	assert.True(t, errors.HasAPICode(err, errors.CodeTableDoesNotExist))
}

func TestRevokeAccess(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	accessRepo := new(mockAccessRepository)
	userRepo := new(mockUserRepository)
	propagator, pm := newTestPropagator(objectRepo)

	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	tableRepo.On("GetByID", mock.Anything, uint(4)).Return(&tableobject.Table{ID: 4, AppID: 7}, nil)
	accessRepo.On("GetByObjectAndUser", mock.Anything, uint(10), uint(99)).
		Return(&tableobject.UserAccess{ID: 5, TableObjectID: 10, UserID: 99}, nil)
	accessRepo.On("Delete", mock.Anything, uint(5)).Return(nil)
	userRepo.On("UpdateLastActive", mock.Anything, uint(99), mock.Anything).Return(nil)
	pm.expectTableEtagBump(2, 4)

	uc := NewRevokeAccessUseCase(objectRepo, tableRepo, accessRepo, userRepo, propagator, nopLogger{})
	err := uc.Execute(context.Background(), &session.Session{UserID: 99, AppID: 7}, "obj-1")

	require.NoError(t, err)
	accessRepo.AssertCalled(t, "Delete", mock.Anything, uint(5))
}

func TestRevokeAccess_AppScoped(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	propagator, _ := newTestPropagator(objectRepo)

	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	tableRepo.On("GetByID", mock.Anything, uint(4)).Return(&tableobject.Table{ID: 4, AppID: 7}, nil)

	uc := NewRevokeAccessUseCase(objectRepo, tableRepo, new(mockAccessRepository), new(mockUserRepository), propagator, nopLogger{})
	err := uc.Execute(context.Background(), &session.Session{UserID: 99, AppID: 42}, "obj-1")

	assert.True(t, errors.HasAPICode(err, errors.CodeActionNotAllowed))
}

func TestRevokeAccess_GrantMissing(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	accessRepo := new(mockAccessRepository)
	propagator, _ := newTestPropagator(objectRepo)

	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	tableRepo.On("GetByID", mock.Anything, uint(4)).Return(&tableobject.Table{ID: 4, AppID: 7}, nil)
	accessRepo.On("GetByObjectAndUser", mock.Anything, uint(10), uint(99)).Return(nil, nil)

	uc := NewRevokeAccessUseCase(objectRepo, tableRepo, accessRepo, new(mockUserRepository), propagator, nopLogger{})
	err := uc.Execute(context.Background(), &session.Session{UserID: 99, AppID: 7}, "obj-1")

	assert.True(t, errors.HasAPICode(err, errors.CodeTableObjectUserAccessMissing))
}
