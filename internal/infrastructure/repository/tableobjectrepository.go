package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dav/internal/domain/tableobject"
	"dav/internal/infrastructure/persistence/mappers"
	"dav/internal/infrastructure/persistence/models"
	"dav/internal/shared/db"
)

type TableObjectRepository struct {
	db     *gorm.DB
	mapper mappers.TableObjectMapper
}

func NewTableObjectRepository(gormDB *gorm.DB) tableobject.Repository {
	return &TableObjectRepository{
		db:     gormDB,
		mapper: mappers.NewTableObjectMapper(),
	}
}

func (r *TableObjectRepository) Create(ctx context.Context, obj *tableobject.TableObject) error {
	model := r.mapper.ToModel(obj)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create table object: %w", err)
	}
	obj.ID = model.ID
	return nil
}

func (r *TableObjectRepository) GetByUUID(ctx context.Context, uuid string) (*tableobject.TableObject, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.TableObjectModel
	err := tx.Where("uuid = ?", uuid).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get table object by uuid: %w", err)
	}

	props, err := r.propertyRows(tx, model.ID)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(&model, props), nil
}

func (r *TableObjectRepository) ExistsByUUID(ctx context.Context, uuid string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TableObjectModel{}).
		Where("uuid = ?", uuid).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check table object uuid: %w", err)
	}
	return count > 0, nil
}

func (r *TableObjectRepository) UpdateEtag(ctx context.Context, id uint, etag string) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TableObjectModel{}).
		Where("id = ?", id).
		Update("etag", etag).Error
	if err != nil {
		return fmt.Errorf("failed to update table object etag: %w", err)
	}
	return nil
}

func (r *TableObjectRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("table_object_id = ?", id).Delete(&models.TableObjectPropertyModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete table object properties: %w", err)
	}
	if err := tx.Where("id = ?", id).Delete(&models.TableObjectModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete table object: %w", err)
	}
	return nil
}

func (r *TableObjectRepository) UpsertProperty(ctx context.Context, tableObjectID uint, name, value string) error {
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "table_object_id"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&models.TableObjectPropertyModel{
			TableObjectID: tableObjectID,
			Name:          name,
			Value:         value,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to upsert property: %w", err)
	}
	return nil
}

func (r *TableObjectRepository) DeleteProperty(ctx context.Context, tableObjectID uint, name string) error {
	err := db.GetTxFromContext(ctx, r.db).
		Where("table_object_id = ? AND name = ?", tableObjectID, name).
		Delete(&models.TableObjectPropertyModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

func (r *TableObjectRepository) GetProperties(ctx context.Context, tableObjectID uint) ([]tableobject.Property, error) {
	props, err := r.propertyRows(db.GetTxFromContext(ctx, r.db), tableObjectID)
	if err != nil {
		return nil, err
	}
	result := make([]tableobject.Property, len(props))
	for i := range props {
		result[i] = r.mapper.PropertyToDomain(&props[i])
	}
	return result, nil
}

// propertyRows returns the property rows in id order, which is the insertion
// order the object etag is defined over.
func (r *TableObjectRepository) propertyRows(tx *gorm.DB, tableObjectID uint) ([]models.TableObjectPropertyModel, error) {
	var props []models.TableObjectPropertyModel
	err := tx.Where("table_object_id = ?", tableObjectID).
		Order("id ASC").
		Find(&props).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get properties: %w", err)
	}
	return props, nil
}
