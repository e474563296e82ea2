package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dav/internal/domain/tableobject"
	"dav/internal/infrastructure/persistence/mappers"
	"dav/internal/infrastructure/persistence/models"
	"dav/internal/shared/db"
	"dav/internal/shared/errors"
)

type TablePropertyTypeRepository struct {
	db     *gorm.DB
	mapper mappers.PropertyTypeMapper
}

func NewTablePropertyTypeRepository(gormDB *gorm.DB) tableobject.PropertyTypeRepository {
	return &TablePropertyTypeRepository{
		db:     gormDB,
		mapper: mappers.NewPropertyTypeMapper(),
	}
}

func (r *TablePropertyTypeRepository) GetByTableAndName(ctx context.Context, tableID uint, name string) (*tableobject.PropertyType, error) {
	var model models.TablePropertyTypeModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("table_id = ? AND name = ?", tableID, name).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property type: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *TablePropertyTypeRepository) Create(ctx context.Context, pt *tableobject.PropertyType) error {
	model := r.mapper.ToModel(pt)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		// Concurrent first writes race on the unique (table, name) index; the
		// row that won carries the registered type, so losing is fine.
		if errors.IsDuplicateError(err) {
			return nil
		}
		return fmt.Errorf("failed to create property type: %w", err)
	}
	pt.ID = model.ID
	return nil
}

func (r *TablePropertyTypeRepository) ListByTable(ctx context.Context, tableID uint) ([]tableobject.PropertyType, error) {
	var rows []models.TablePropertyTypeModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("table_id = ?", tableID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list property types: %w", err)
	}
	result := make([]tableobject.PropertyType, len(rows))
	for i := range rows {
		result[i] = *r.mapper.ToDomain(&rows[i])
	}
	return result, nil
}
