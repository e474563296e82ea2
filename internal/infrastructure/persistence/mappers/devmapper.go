package mappers

import (
	"dav/internal/domain/dev"
	"dav/internal/infrastructure/persistence/models"
)

// DevMapper handles conversion between Dev domain and model.
type DevMapper interface {
	ToDomain(model *models.DevModel) *dev.Dev
}

type DevMapperImpl struct{}

// NewDevMapper creates a new DevMapper.
func NewDevMapper() DevMapper {
	return &DevMapperImpl{}
}

func (m *DevMapperImpl) ToDomain(model *models.DevModel) *dev.Dev {
	return &dev.Dev{
		ID:        model.ID,
		UserID:    model.UserID,
		UUID:      model.UUID,
		APIKey:    model.APIKey,
		SecretKey: model.SecretKey,
		CreatedAt: model.CreatedAt,
	}
}

// AppMapper handles conversion between App domain and model.
type AppMapper interface {
	ToDomain(model *models.AppModel) *dev.App
}

type AppMapperImpl struct{}

// NewAppMapper creates a new AppMapper.
func NewAppMapper() AppMapper {
	return &AppMapperImpl{}
}

func (m *AppMapperImpl) ToDomain(model *models.AppModel) *dev.App {
	return &dev.App{
		ID:    model.ID,
		DevID: model.DevID,
		Name:  model.Name,
	}
}
