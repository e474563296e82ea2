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

type TableEtagRepository struct {
	db     *gorm.DB
	mapper mappers.TableEtagMapper
}

func NewTableEtagRepository(gormDB *gorm.DB) tableobject.TableEtagRepository {
	return &TableEtagRepository{
		db:     gormDB,
		mapper: mappers.NewTableEtagMapper(),
	}
}

func (r *TableEtagRepository) GetByUserAndTable(ctx context.Context, userID, tableID uint) (*tableobject.TableEtag, error) {
	var model models.TableEtagModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND table_id = ?", userID, tableID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get table etag: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *TableEtagRepository) Create(ctx context.Context, etag *tableobject.TableEtag) error {
	model := r.mapper.ToModel(etag)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create table etag: %w", err)
	}
	etag.ID = model.ID
	return nil
}

func (r *TableEtagRepository) Update(ctx context.Context, etag *tableobject.TableEtag) error {
	model := r.mapper.ToModel(etag)
	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update table etag: %w", err)
	}
	return nil
}
