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

type TableObjectUserAccessRepository struct {
	db     *gorm.DB
	mapper mappers.UserAccessMapper
}

func NewTableObjectUserAccessRepository(gormDB *gorm.DB) tableobject.UserAccessRepository {
	return &TableObjectUserAccessRepository{
		db:     gormDB,
		mapper: mappers.NewUserAccessMapper(),
	}
}

func (r *TableObjectUserAccessRepository) GetByObjectAndUser(ctx context.Context, tableObjectID, userID uint) (*tableobject.UserAccess, error) {
	var model models.TableObjectUserAccessModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("table_object_id = ? AND user_id = ?", tableObjectID, userID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user access: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *TableObjectUserAccessRepository) Create(ctx context.Context, access *tableobject.UserAccess) error {
	model := r.mapper.ToModel(access)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user access: %w", err)
	}
	access.ID = model.ID
	return nil
}

func (r *TableObjectUserAccessRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.TableObjectUserAccessModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete user access: %w", err)
	}
	return nil
}
