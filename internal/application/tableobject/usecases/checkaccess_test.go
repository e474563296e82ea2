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

func TestCheckAccess_OwnerThroughOwningApp(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	accessRepo := new(mockAccessRepository)

	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	accessRepo.On("GetByObjectAndUser", mock.Anything, uint(10), uint(2)).Return(nil, nil)
	tableRepo.On("GetByID", mock.Anything, uint(4)).Return(&tableobject.Table{ID: 4, AppID: 7}, nil)

	uc := NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, nopLogger{})
	result, err := uc.Execute(context.Background(), &session.Session{UserID: 2, AppID: 7}, "obj-1")

	require.NoError(t, err)
	assert.Equal(t, obj, result.Object)
	assert.Equal(t, uint(4), result.EffectiveTableID)
	assert.False(t, result.ViaGrant)
}

func TestCheckAccess_DeniedWithoutGrant(t *testing.T) {
	tests := []struct {
		name    string
		session *session.Session
	}{
		{"different user", &session.Session{UserID: 99, AppID: 7}},
		{"different app", &session.Session{UserID: 2, AppID: 99}},
		{"different user and app", &session.Session{UserID: 99, AppID: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objectRepo := new(mockObjectRepository)
			tableRepo := new(mockTableRepository)
			accessRepo := new(mockAccessRepository)

			obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
			objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
			accessRepo.On("GetByObjectAndUser", mock.Anything, uint(10), tt.session.UserID).Return(nil, nil)
			tableRepo.On("GetByID", mock.Anything, uint(4)).Return(&tableobject.Table{ID: 4, AppID: 7}, nil)

			uc := NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, nopLogger{})
			result, err := uc.Execute(context.Background(), tt.session, "obj-1")

			assert.Nil(t, result)
			assert.True(t, errors.HasAPICode(err, errors.CodeActionNotAllowed))
		})
	}
}

func TestCheckAccess_GrantBypassesOwnershipAndAppChecks(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	accessRepo := new(mockAccessRepository)

	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	accessRepo.On("GetByObjectAndUser", mock.Anything, uint(10), uint(99)).
		Return(&tableobject.UserAccess{ID: 1, TableObjectID: 10, UserID: 99}, nil)

	uc := NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, nopLogger{})
	// Neither the owner nor the owning app, but a grant exists.
	result, err := uc.Execute(context.Background(), &session.Session{UserID: 99, AppID: 42}, "obj-1")

	require.NoError(t, err)
	assert.True(t, result.ViaGrant)
	assert.Equal(t, uint(4), result.EffectiveTableID)
	tableRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCheckAccess_GrantAliasSubstitutesTableID(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	accessRepo := new(mockAccessRepository)

	alias := uint(77)
	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	accessRepo.On("GetByObjectAndUser", mock.Anything, uint(10), uint(99)).
		Return(&tableobject.UserAccess{ID: 1, TableObjectID: 10, UserID: 99, TableAlias: &alias}, nil)

	uc := NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, nopLogger{})
	result, err := uc.Execute(context.Background(), &session.Session{UserID: 99, AppID: 42}, "obj-1")

	require.NoError(t, err)
	assert.Equal(t, uint(77), result.EffectiveTableID)
}

func TestCheckAccess_ObjectMissing(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	objectRepo.On("GetByUUID", mock.Anything, "gone").Return(nil, nil)

	uc := NewCheckAccessUseCase(objectRepo, new(mockTableRepository), new(mockAccessRepository), nopLogger{})
	result, err := uc.Execute(context.Background(), &session.Session{UserID: 2, AppID: 7}, "gone")

	assert.Nil(t, result)
	assert.True(t, errors.HasAPICode(err, errors.CodeTableObjectDoesNotExist))
}
