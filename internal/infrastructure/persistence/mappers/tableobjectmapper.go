package mappers

import (
	"dav/internal/domain/tableobject"
	"dav/internal/infrastructure/persistence/models"
)

// TableObjectMapper handles conversion between TableObject domain and model.
// Properties ride separately; the repository attaches them in row id order.
type TableObjectMapper interface {
	ToModel(obj *tableobject.TableObject) *models.TableObjectModel
	ToDomain(model *models.TableObjectModel, props []models.TableObjectPropertyModel) *tableobject.TableObject
	PropertyToDomain(model *models.TableObjectPropertyModel) tableobject.Property
}

type TableObjectMapperImpl struct{}

// NewTableObjectMapper creates a new TableObjectMapper.
func NewTableObjectMapper() TableObjectMapper {
	return &TableObjectMapperImpl{}
}

func (m *TableObjectMapperImpl) ToModel(obj *tableobject.TableObject) *models.TableObjectModel {
	return &models.TableObjectModel{
		ID:        obj.ID,
		UUID:      obj.UUID,
		UserID:    obj.UserID,
		TableID:   obj.TableID,
		File:      obj.File,
		Etag:      obj.Etag,
		CreatedAt: obj.CreatedAt,
		UpdatedAt: obj.UpdatedAt,
	}
}

func (m *TableObjectMapperImpl) ToDomain(model *models.TableObjectModel, props []models.TableObjectPropertyModel) *tableobject.TableObject {
	obj := &tableobject.TableObject{
		ID:        model.ID,
		UUID:      model.UUID,
		UserID:    model.UserID,
		TableID:   model.TableID,
		File:      model.File,
		Etag:      model.Etag,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	obj.Properties = make([]tableobject.Property, len(props))
	for i := range props {
		obj.Properties[i] = m.PropertyToDomain(&props[i])
	}
	return obj
}

func (m *TableObjectMapperImpl) PropertyToDomain(model *models.TableObjectPropertyModel) tableobject.Property {
	return tableobject.Property{
		ID:            model.ID,
		TableObjectID: model.TableObjectID,
		Name:          model.Name,
		Value:         model.Value,
	}
}
