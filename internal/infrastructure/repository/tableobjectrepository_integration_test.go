package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dav/internal/domain/tableobject"
	"dav/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gormDB.AutoMigrate(
		&models.TableObjectModel{},
		&models.TableObjectPropertyModel{},
		&models.TablePropertyTypeModel{},
		&models.TableEtagModel{},
		&models.TableObjectUserAccessModel{},
		&models.PendingCacheOperationModel{},
	)
	require.NoError(t, err)

	return gormDB
}

func TestTableObjectRepository_PropertyInsertionOrderSurvivesUpdates(t *testing.T) {
	repo := NewTableObjectRepository(setupTestDB(t))
	ctx := context.Background()

	obj := &tableobject.TableObject{UUID: "obj-1", UserID: 1, TableID: 1}
	require.NoError(t, repo.Create(ctx, obj))
	require.NotZero(t, obj.ID)

	require.NoError(t, repo.UpsertProperty(ctx, obj.ID, "first", "a"))
	require.NoError(t, repo.UpsertProperty(ctx, obj.ID, "second", "b"))
	require.NoError(t, repo.UpsertProperty(ctx, obj.ID, "third", "c"))

	// Overwriting an early property must not move it to the end.
	require.NoError(t, repo.UpsertProperty(ctx, obj.ID, "first", "a2"))

	props, err := repo.GetProperties(ctx, obj.ID)
	require.NoError(t, err)
	require.Len(t, props, 3)
	assert.Equal(t, "first", props[0].Name)
	assert.Equal(t, "a2", props[0].Value)
	assert.Equal(t, "second", props[1].Name)
	assert.Equal(t, "third", props[2].Name)
}

func TestTableObjectRepository_GetByUUIDLoadsProperties(t *testing.T) {
	repo := NewTableObjectRepository(setupTestDB(t))
	ctx := context.Background()

	obj := &tableobject.TableObject{UUID: "obj-2", UserID: 1, TableID: 1, File: true}
	require.NoError(t, repo.Create(ctx, obj))
	require.NoError(t, repo.UpsertProperty(ctx, obj.ID, "size", "42"))

	loaded, err := repo.GetByUUID(ctx, "obj-2")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.File)
	require.Len(t, loaded.Properties, 1)
	assert.Equal(t, "size", loaded.Properties[0].Name)

	missing, err := repo.GetByUUID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTableObjectRepository_DeleteRemovesProperties(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewTableObjectRepository(gormDB)
	ctx := context.Background()

	obj := &tableobject.TableObject{UUID: "obj-3", UserID: 1, TableID: 1}
	require.NoError(t, repo.Create(ctx, obj))
	require.NoError(t, repo.UpsertProperty(ctx, obj.ID, "name", "v"))

	require.NoError(t, repo.Delete(ctx, obj.ID))

	var count int64
	require.NoError(t, gormDB.Model(&models.TableObjectPropertyModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTablePropertyTypeRepository_DuplicateCreateIsSilent(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewTablePropertyTypeRepository(gormDB)
	ctx := context.Background()

	first := &tableobject.PropertyType{TableID: 1, Name: "count", DataType: tableobject.DataTypeInt}
	require.NoError(t, repo.Create(ctx, first))

	// A racing writer hitting the unique index loses quietly.
	second := &tableobject.PropertyType{TableID: 1, Name: "count", DataType: tableobject.DataTypeString}
	require.NoError(t, repo.Create(ctx, second))

	registered, err := repo.GetByTableAndName(ctx, 1, "count")
	require.NoError(t, err)
	require.NotNil(t, registered)
	assert.Equal(t, tableobject.DataTypeInt, registered.DataType)
}

func TestPendingCacheOperationRepository_ListOldestFirst(t *testing.T) {
	repo := NewPendingCacheOperationRepository(setupTestDB(t))
	ctx := context.Background()

	for _, uuid := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &tableobject.PendingCacheOperation{
			UUID: uuid,
			Kind: tableobject.CacheOperationSave,
		}))
	}

	ops, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "a", ops[0].UUID)
	assert.Equal(t, "b", ops[1].UUID)

	require.NoError(t, repo.Delete(ctx, ops[0].ID))
	remaining, err := repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
