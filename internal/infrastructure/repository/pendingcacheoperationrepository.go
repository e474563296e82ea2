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

type PendingCacheOperationRepository struct {
	db     *gorm.DB
	mapper mappers.PendingCacheOperationMapper
}

func NewPendingCacheOperationRepository(gormDB *gorm.DB) tableobject.PendingCacheOperationRepository {
	return &PendingCacheOperationRepository{
		db:     gormDB,
		mapper: mappers.NewPendingCacheOperationMapper(),
	}
}

func (r *PendingCacheOperationRepository) Create(ctx context.Context, op *tableobject.PendingCacheOperation) error {
	model := r.mapper.ToModel(op)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create pending cache operation: %w", err)
	}
	op.ID = model.ID
	return nil
}

func (r *PendingCacheOperationRepository) List(ctx context.Context, limit int) ([]tableobject.PendingCacheOperation, error) {
	var rows []models.PendingCacheOperationModel
	err := db.GetTxFromContext(ctx, r.db).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending cache operations: %w", err)
	}
	result := make([]tableobject.PendingCacheOperation, len(rows))
	for i := range rows {
		result[i] = r.mapper.ToDomain(&rows[i])
	}
	return result, nil
}

func (r *PendingCacheOperationRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.PendingCacheOperationModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete pending cache operation: %w", err)
	}
	return nil
}
