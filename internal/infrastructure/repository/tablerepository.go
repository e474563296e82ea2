package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dav/internal/domain/tableobject"
	"dav/internal/infrastructure/persistence/mappers"
	"dav/internal/infrastructure/persistence/models"
	"dav/internal/shared/db"
)

type TableRepository struct {
	db     *gorm.DB
	mapper mappers.TableMapper
}

func NewTableRepository(gormDB *gorm.DB) tableobject.TableRepository {
	return &TableRepository{
		db:     gormDB,
		mapper: mappers.NewTableMapper(),
	}
}

func (r *TableRepository) GetByID(ctx context.Context, id uint) (*tableobject.Table, error) {
	var model models.TableModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get table by id: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}
