package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dav/internal/domain/tableobject"
	"dav/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)            {}
func (nopLogger) Info(string, ...any)             {}
func (nopLogger) Warn(string, ...any)             {}
func (nopLogger) Error(string, ...any)            {}
func (nopLogger) Fatal(string, ...any)            {}
func (l nopLogger) With(...any) logger.Interface  { return l }
func (l nopLogger) Named(string) logger.Interface { return l }
func (nopLogger) Debugw(string, ...interface{})   {}
func (nopLogger) Infow(string, ...interface{})    {}
func (nopLogger) Warnw(string, ...interface{})    {}
func (nopLogger) Errorw(string, ...interface{})   {}
func (nopLogger) Fatalw(string, ...interface{})   {}

type mockObjectRepository struct {
	mock.Mock
}

func (m *mockObjectRepository) Create(ctx context.Context, obj *tableobject.TableObject) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *mockObjectRepository) GetByUUID(ctx context.Context, uuid string) (*tableobject.TableObject, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tableobject.TableObject), args.Error(1)
}

func (m *mockObjectRepository) ExistsByUUID(ctx context.Context, uuid string) (bool, error) {
	args := m.Called(ctx, uuid)
	return args.Bool(0), args.Error(1)
}

func (m *mockObjectRepository) UpdateEtag(ctx context.Context, id uint, etag string) error {
	args := m.Called(ctx, id, etag)
	return args.Error(0)
}

func (m *mockObjectRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockObjectRepository) UpsertProperty(ctx context.Context, tableObjectID uint, name, value string) error {
	args := m.Called(ctx, tableObjectID, name, value)
	return args.Error(0)
}

func (m *mockObjectRepository) DeleteProperty(ctx context.Context, tableObjectID uint, name string) error {
	args := m.Called(ctx, tableObjectID, name)
	return args.Error(0)
}

func (m *mockObjectRepository) GetProperties(ctx context.Context, tableObjectID uint) ([]tableobject.Property, error) {
	args := m.Called(ctx, tableObjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tableobject.Property), args.Error(1)
}

type mockPropertyTypeRepository struct {
	mock.Mock
}

func (m *mockPropertyTypeRepository) GetByTableAndName(ctx context.Context, tableID uint, name string) (*tableobject.PropertyType, error) {
	args := m.Called(ctx, tableID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tableobject.PropertyType), args.Error(1)
}

func (m *mockPropertyTypeRepository) Create(ctx context.Context, pt *tableobject.PropertyType) error {
	args := m.Called(ctx, pt)
	return args.Error(0)
}

func (m *mockPropertyTypeRepository) ListByTable(ctx context.Context, tableID uint) ([]tableobject.PropertyType, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tableobject.PropertyType), args.Error(1)
}

type mockTableEtagRepository struct {
	mock.Mock
}

func (m *mockTableEtagRepository) GetByUserAndTable(ctx context.Context, userID, tableID uint) (*tableobject.TableEtag, error) {
	args := m.Called(ctx, userID, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tableobject.TableEtag), args.Error(1)
}

func (m *mockTableEtagRepository) Create(ctx context.Context, etag *tableobject.TableEtag) error {
	args := m.Called(ctx, etag)
	return args.Error(0)
}

func (m *mockTableEtagRepository) Update(ctx context.Context, etag *tableobject.TableEtag) error {
	args := m.Called(ctx, etag)
	return args.Error(0)
}

type mockPendingRepository struct {
	mock.Mock
}

func (m *mockPendingRepository) Create(ctx context.Context, op *tableobject.PendingCacheOperation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *mockPendingRepository) List(ctx context.Context, limit int) ([]tableobject.PendingCacheOperation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tableobject.PendingCacheOperation), args.Error(1)
}

func (m *mockPendingRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) SaveObject(ctx context.Context, snap *tableobject.ObjectSnapshot, shadows []tableobject.PropertyShadow) error {
	args := m.Called(ctx, snap, shadows)
	return args.Error(0)
}

func (m *mockCache) DeleteObject(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}
