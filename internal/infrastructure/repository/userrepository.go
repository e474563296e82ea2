package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dav/internal/domain/user"
	"dav/internal/infrastructure/persistence/mappers"
	"dav/internal/infrastructure/persistence/models"
	"dav/internal/shared/db"
)

type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewUserRepository(gormDB *gorm.DB) user.Repository {
	return &UserRepository{
		db:     gormDB,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *UserRepository) UpdateLastActive(ctx context.Context, id uint, at time.Time) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", id).
		Update("last_active", at).Error
	if err != nil {
		return fmt.Errorf("failed to update last active: %w", err)
	}
	return nil
}
