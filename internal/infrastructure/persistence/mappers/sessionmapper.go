package mappers

import (
	"dav/internal/domain/session"
	"dav/internal/infrastructure/persistence/models"
)

// SessionMapper handles conversion between Session domain and model.
type SessionMapper interface {
	ToModel(sess *session.Session) *models.SessionModel
	ToDomain(model *models.SessionModel) *session.Session
}

type SessionMapperImpl struct{}

// NewSessionMapper creates a new SessionMapper.
func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

func (m *SessionMapperImpl) ToModel(sess *session.Session) *models.SessionModel {
	return &models.SessionModel{
		ID:         sess.ID,
		UserID:     sess.UserID,
		AppID:      sess.AppID,
		Token:      sess.Token,
		OldToken:   sess.OldToken,
		DeviceName: sess.DeviceName,
		DeviceOS:   sess.DeviceOS,
		UpdatedAt:  sess.UpdatedAt,
		CreatedAt:  sess.CreatedAt,
	}
}

func (m *SessionMapperImpl) ToDomain(model *models.SessionModel) *session.Session {
	return &session.Session{
		ID:         model.ID,
		UserID:     model.UserID,
		AppID:      model.AppID,
		Token:      model.Token,
		OldToken:   model.OldToken,
		DeviceName: model.DeviceName,
		DeviceOS:   model.DeviceOS,
		UpdatedAt:  model.UpdatedAt,
		CreatedAt:  model.CreatedAt,
	}
}
