package mappers

import (
	"dav/internal/domain/tableobject"
	"dav/internal/infrastructure/persistence/models"
)

// TableMapper handles conversion between Table domain and model.
type TableMapper interface {
	ToDomain(model *models.TableModel) *tableobject.Table
}

type TableMapperImpl struct{}

// NewTableMapper creates a new TableMapper.
func NewTableMapper() TableMapper {
	return &TableMapperImpl{}
}

func (m *TableMapperImpl) ToDomain(model *models.TableModel) *tableobject.Table {
	return &tableobject.Table{
		ID:        model.ID,
		AppID:     model.AppID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
	}
}

// UserAccessMapper handles conversion between UserAccess domain and model.
type UserAccessMapper interface {
	ToModel(access *tableobject.UserAccess) *models.TableObjectUserAccessModel
	ToDomain(model *models.TableObjectUserAccessModel) *tableobject.UserAccess
}

type UserAccessMapperImpl struct{}

// NewUserAccessMapper creates a new UserAccessMapper.
func NewUserAccessMapper() UserAccessMapper {
	return &UserAccessMapperImpl{}
}

func (m *UserAccessMapperImpl) ToModel(access *tableobject.UserAccess) *models.TableObjectUserAccessModel {
	return &models.TableObjectUserAccessModel{
		ID:            access.ID,
		TableObjectID: access.TableObjectID,
		UserID:        access.UserID,
		TableAlias:    access.TableAlias,
		CreatedAt:     access.CreatedAt,
	}
}

func (m *UserAccessMapperImpl) ToDomain(model *models.TableObjectUserAccessModel) *tableobject.UserAccess {
	return &tableobject.UserAccess{
		ID:            model.ID,
		TableObjectID: model.TableObjectID,
		UserID:        model.UserID,
		TableAlias:    model.TableAlias,
		CreatedAt:     model.CreatedAt,
	}
}

// PropertyTypeMapper handles conversion between PropertyType domain and model.
type PropertyTypeMapper interface {
	ToModel(pt *tableobject.PropertyType) *models.TablePropertyTypeModel
	ToDomain(model *models.TablePropertyTypeModel) *tableobject.PropertyType
}

type PropertyTypeMapperImpl struct{}

// NewPropertyTypeMapper creates a new PropertyTypeMapper.
func NewPropertyTypeMapper() PropertyTypeMapper {
	return &PropertyTypeMapperImpl{}
}

func (m *PropertyTypeMapperImpl) ToModel(pt *tableobject.PropertyType) *models.TablePropertyTypeModel {
	return &models.TablePropertyTypeModel{
		ID:       pt.ID,
		TableID:  pt.TableID,
		Name:     pt.Name,
		DataType: int(pt.DataType),
	}
}

func (m *PropertyTypeMapperImpl) ToDomain(model *models.TablePropertyTypeModel) *tableobject.PropertyType {
	return &tableobject.PropertyType{
		ID:       model.ID,
		TableID:  model.TableID,
		Name:     model.Name,
		DataType: tableobject.DataType(model.DataType),
	}
}

// TableEtagMapper handles conversion between TableEtag domain and model.
type TableEtagMapper interface {
	ToModel(etag *tableobject.TableEtag) *models.TableEtagModel
	ToDomain(model *models.TableEtagModel) *tableobject.TableEtag
}

type TableEtagMapperImpl struct{}

// NewTableEtagMapper creates a new TableEtagMapper.
func NewTableEtagMapper() TableEtagMapper {
	return &TableEtagMapperImpl{}
}

func (m *TableEtagMapperImpl) ToModel(etag *tableobject.TableEtag) *models.TableEtagModel {
	return &models.TableEtagModel{
		ID:        etag.ID,
		UserID:    etag.UserID,
		TableID:   etag.TableID,
		Etag:      etag.Etag,
		UpdatedAt: etag.UpdatedAt,
	}
}

func (m *TableEtagMapperImpl) ToDomain(model *models.TableEtagModel) *tableobject.TableEtag {
	return &tableobject.TableEtag{
		ID:        model.ID,
		UserID:    model.UserID,
		TableID:   model.TableID,
		Etag:      model.Etag,
		UpdatedAt: model.UpdatedAt,
	}
}

// PendingCacheOperationMapper handles conversion between PendingCacheOperation
// domain and model.
type PendingCacheOperationMapper interface {
	ToModel(op *tableobject.PendingCacheOperation) *models.PendingCacheOperationModel
	ToDomain(model *models.PendingCacheOperationModel) tableobject.PendingCacheOperation
}

type PendingCacheOperationMapperImpl struct{}

// NewPendingCacheOperationMapper creates a new PendingCacheOperationMapper.
func NewPendingCacheOperationMapper() PendingCacheOperationMapper {
	return &PendingCacheOperationMapperImpl{}
}

func (m *PendingCacheOperationMapperImpl) ToModel(op *tableobject.PendingCacheOperation) *models.PendingCacheOperationModel {
	return &models.PendingCacheOperationModel{
		ID:        op.ID,
		UUID:      op.UUID,
		Kind:      string(op.Kind),
		CreatedAt: op.CreatedAt,
	}
}

func (m *PendingCacheOperationMapperImpl) ToDomain(model *models.PendingCacheOperationModel) tableobject.PendingCacheOperation {
	return tableobject.PendingCacheOperation{
		ID:        model.ID,
		UUID:      model.UUID,
		Kind:      tableobject.CacheOperationKind(model.Kind),
		CreatedAt: model.CreatedAt,
	}
}
