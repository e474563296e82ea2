package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dav/internal/domain/dev"
	"dav/internal/infrastructure/persistence/mappers"
	"dav/internal/infrastructure/persistence/models"
	"dav/internal/shared/db"
)

type DevRepository struct {
	db     *gorm.DB
	mapper mappers.DevMapper
}

func NewDevRepository(gormDB *gorm.DB) dev.Repository {
	return &DevRepository{
		db:     gormDB,
		mapper: mappers.NewDevMapper(),
	}
}

func (r *DevRepository) GetByID(ctx context.Context, id uint) (*dev.Dev, error) {
	var model models.DevModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dev by id: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *DevRepository) GetByAPIKey(ctx context.Context, apiKey string) (*dev.Dev, error) {
	var model models.DevModel
	err := db.GetTxFromContext(ctx, r.db).Where("api_key = ?", apiKey).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dev by api key: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

type AppRepository struct {
	db     *gorm.DB
	mapper mappers.AppMapper
}

func NewAppRepository(gormDB *gorm.DB) dev.AppRepository {
	return &AppRepository{
		db:     gormDB,
		mapper: mappers.NewAppMapper(),
	}
}

func (r *AppRepository) GetByID(ctx context.Context, id uint) (*dev.App, error) {
	var model models.AppModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get app by id: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}
