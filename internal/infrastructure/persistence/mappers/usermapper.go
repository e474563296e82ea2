package mappers

import (
	"dav/internal/domain/user"
	"dav/internal/infrastructure/persistence/models"
)

// UserMapper handles conversion between User domain and model.
type UserMapper interface {
	ToDomain(model *models.UserModel) *user.User
}

type UserMapperImpl struct{}

// NewUserMapper creates a new UserMapper.
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) *user.User {
	return &user.User{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		LastActive:   model.LastActive,
		CreatedAt:    model.CreatedAt,
	}
}
