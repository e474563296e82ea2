// Package repository contains the GORM-backed implementations of the domain
// repository interfaces. Lookups that miss return (nil, nil); callers decide
// whether absence is an error.
package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dav/internal/domain/session"
	"dav/internal/infrastructure/persistence/mappers"
	"dav/internal/infrastructure/persistence/models"
	"dav/internal/shared/db"
)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
}

func NewSessionRepository(gormDB *gorm.DB) session.Repository {
	return &SessionRepository{
		db:     gormDB,
		mapper: mappers.NewSessionMapper(),
	}
}

func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	model := r.mapper.ToModel(sess)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	sess.ID = model.ID
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uint) (*session.Session, error) {
	var model models.SessionModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	var model models.SessionModel
	err := db.GetTxFromContext(ctx, r.db).Where("token = ?", token).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) GetByOldToken(ctx context.Context, token string) (*session.Session, error) {
	var model models.SessionModel
	err := db.GetTxFromContext(ctx, r.db).Where("old_token = ?", token).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by old token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) Update(ctx context.Context, sess *session.Session) error {
	model := r.mapper.ToModel(sess)
	result := db.GetTxFromContext(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteStale(ctx context.Context, notUpdatedSince time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("updated_at < ?", notUpdatedSince).
		Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete stale sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
