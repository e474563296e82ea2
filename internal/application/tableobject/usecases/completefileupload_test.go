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

func TestCompleteFileUpload(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	userRepo := new(mockUserRepository)
	propagator, pm := newTestPropagator(objectRepo)

	obj := &tableobject.TableObject{ID: 10, UUID: "file-1", UserID: 2, TableID: 4, File: true}
	objectRepo.On("GetByUUID", mock.Anything, "file-1").Return(obj, nil)
	tableRepo.On("GetByID", mock.Anything, uint(4)).Return(&tableobject.Table{ID: 4, AppID: 7}, nil)
	objectRepo.On("UpsertProperty", mock.Anything, uint(10), "size", "2048").Return(nil)
	objectRepo.On("UpsertProperty", mock.Anything, uint(10), "type", "image/png").Return(nil)
	objectRepo.On("UpsertProperty", mock.Anything, uint(10), "etag", "blob-etag").Return(nil)
	pm.propertyTypeRepo.On("GetByTableAndName", mock.Anything, uint(4), mock.Anything).Return(nil, nil)
	pm.propertyTypeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	objectRepo.On("GetProperties", mock.Anything, uint(10)).Return([]tableobject.Property{
		{ID: 1, TableObjectID: 10, Name: "etag", Value: "blob-etag"},
		{ID: 2, TableObjectID: 10, Name: "size", Value: "2048"},
		{ID: 3, TableObjectID: 10, Name: "type", Value: "image/png"},
	}, nil)
	objectRepo.On("UpdateEtag", mock.Anything, uint(10), mock.Anything).Return(nil)
	pm.propertyTypeRepo.On("ListByTable", mock.Anything, uint(4)).Return([]tableobject.PropertyType{
		{TableID: 4, Name: "size", DataType: tableobject.DataTypeInt},
		{TableID: 4, Name: "type", DataType: tableobject.DataTypeString},
		{TableID: 4, Name: "etag", DataType: tableobject.DataTypeString},
	}, nil)
	pm.expectTableEtagBump(2, 4)
	pm.cache.On("SaveObject", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	userRepo.On("UpdateLastActive", mock.Anything, uint(2), mock.Anything).Return(nil)

	uc := NewCompleteFileUploadUseCase(objectRepo, tableRepo, userRepo, propagator, passthroughTx{}, nopLogger{})
	result, err := uc.Execute(context.Background(), &session.Session{UserID: 2, AppID: 7}, CompleteFileUploadCommand{
		UUID:        "file-1",
		Size:        2048,
		ContentType: "image/png",
		FileEtag:    "blob-etag",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Etag)
	// The size metadata registers as numeric so cache reads decode it.
	pm.propertyTypeRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(pt *tableobject.PropertyType) bool {
		return pt.Name == "size" && pt.DataType == tableobject.DataTypeInt
	}))
}

func TestCompleteFileUpload_NotAFile(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	propagator, _ := newTestPropagator(objectRepo)

	obj := &tableobject.TableObject{ID: 10, UUID: "obj-1", UserID: 2, TableID: 4, File: false}
	objectRepo.On("GetByUUID", mock.Anything, "obj-1").Return(obj, nil)
	tableRepo.On("GetByID", mock.Anything, uint(4)).Return(&tableobject.Table{ID: 4, AppID: 7}, nil)

	uc := NewCompleteFileUploadUseCase(objectRepo, tableRepo, new(mockUserRepository), propagator, passthroughTx{}, nopLogger{})
	result, err := uc.Execute(context.Background(), &session.Session{UserID: 2, AppID: 7}, CompleteFileUploadCommand{UUID: "obj-1"})

	assert.Nil(t, result)
	assert.True(t, errors.HasAPICode(err, errors.CodeTableObjectIsNotFile))
}

func TestCompleteFileUpload_OwnerOnly(t *testing.T) {
	objectRepo := new(mockObjectRepository)
	tableRepo := new(mockTableRepository)
	propagator, _ := newTestPropagator(objectRepo)

	obj := &tableobject.TableObject{ID: 10, UUID: "file-1", UserID: 2, TableID: 4, File: true}
	objectRepo.On("GetByUUID", mock.Anything, "file-1").Return(obj, nil)
	tableRepo.On("GetByID", mock.Anything, uint(4)).Return(&tableobject.Table{ID: 4, AppID: 7}, nil)

	uc := NewCompleteFileUploadUseCase(objectRepo, tableRepo, new(mockUserRepository), propagator, passthroughTx{}, nopLogger{})
	result, err := uc.Execute(context.Background(), &session.Session{UserID: 99, AppID: 7}, CompleteFileUploadCommand{UUID: "file-1"})

	assert.Nil(t, result)
	assert.True(t, errors.HasAPICode(err, errors.CodeActionNotAllowed))
}
