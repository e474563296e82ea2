// Package tableobject contains the table-object aggregate: user-owned,
// app-scoped records carrying an open-ended bag of named scalar properties,
// together with the versioning and cache-propagation types built around them.
package tableobject

import (
	"context"
	"time"
)

// TableObject is a user-owned record belonging to a table. Properties are
// kept in insertion order (property row id order); the object etag depends
// on that order being stable.
type TableObject struct {
	ID         uint
	UUID       string
	UserID     uint
	TableID    uint
	File       bool
	Etag       string
	Properties []Property
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Property is one named scalar belonging to a table object. The value is
// always serialized to text at rest; the property type registry supplies the
// logical type on the way out.
type Property struct {
	ID            uint
	TableObjectID uint
	Name          string
	Value         string
}

// PropertyNamed returns the property with the given name, or nil.
func (t *TableObject) PropertyNamed(name string) *Property {
	for i := range t.Properties {
		if t.Properties[i].Name == name {
			return &t.Properties[i]
		}
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, obj *TableObject) error
	// GetByUUID loads a table object with its properties in insertion order.
	// Returns (nil, nil) when absent.
	GetByUUID(ctx context.Context, uuid string) (*TableObject, error)
	ExistsByUUID(ctx context.Context, uuid string) (bool, error)
	UpdateEtag(ctx context.Context, id uint, etag string) error
	Delete(ctx context.Context, id uint) error

	// UpsertProperty creates or updates a single named property.
	UpsertProperty(ctx context.Context, tableObjectID uint, name, value string) error
	DeleteProperty(ctx context.Context, tableObjectID uint, name string) error
	// GetProperties returns the current properties in insertion order.
	GetProperties(ctx context.Context, tableObjectID uint) ([]Property, error)
}

// Table is a named grouping of table objects scoped to one app.
type Table struct {
	ID        uint
	AppID     uint
	Name      string
	CreatedAt time.Time
}

type TableRepository interface {
	GetByID(ctx context.Context, id uint) (*Table, error)
}
