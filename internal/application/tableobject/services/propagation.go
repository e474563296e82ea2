// Package services contains the etag/change-propagation engine: it keeps the
// object etags, the per-table version tags, and the denormalized cache in
// step with the primary store, queuing retriable operations when the cache is
// unreachable.
package services

import (
	"context"
	"fmt"

	"dav/internal/domain/tableobject"
	"dav/internal/shared/id"
	"dav/internal/shared/logger"
)

// ChangePropagator applies the post-commit steps of every table-object
// mutation: object etag recompute, table etag bump, cache synchronization.
// The primary store is the source of truth; the cache is a best-effort
// follower and failures there never surface to the caller.
type ChangePropagator struct {
	objectRepo       tableobject.Repository
	propertyTypeRepo tableobject.PropertyTypeRepository
	tableEtagRepo    tableobject.TableEtagRepository
	pendingRepo      tableobject.PendingCacheOperationRepository
	cache            tableobject.Cache
	logger           logger.Interface
}

func NewChangePropagator(
	objectRepo tableobject.Repository,
	propertyTypeRepo tableobject.PropertyTypeRepository,
	tableEtagRepo tableobject.TableEtagRepository,
	pendingRepo tableobject.PendingCacheOperationRepository,
	cache tableobject.Cache,
	logger logger.Interface,
) *ChangePropagator {
	return &ChangePropagator{
		objectRepo:       objectRepo,
		propertyTypeRepo: propertyTypeRepo,
		tableEtagRepo:    tableEtagRepo,
		pendingRepo:      pendingRepo,
		cache:            cache,
		logger:           logger,
	}
}

// RecomputeObjectEtag refetches the object's current properties, computes the
// content fingerprint, and persists it. The returned etag is also set on obj.
func (p *ChangePropagator) RecomputeObjectEtag(ctx context.Context, obj *tableobject.TableObject) (string, error) {
	props, err := p.objectRepo.GetProperties(ctx, obj.ID)
	if err != nil {
		return "", fmt.Errorf("failed to get properties: %w", err)
	}

	etag := tableobject.ComputeObjectEtag(obj.UUID, props)
	if err := p.objectRepo.UpdateEtag(ctx, obj.ID, etag); err != nil {
		return "", fmt.Errorf("failed to persist etag: %w", err)
	}

	obj.Etag = etag
	obj.Properties = props
	return etag, nil
}

// BumpTableEtag replaces the (userId, tableId) version tag with a fresh
// random value, creating the row lazily on first change.
func (p *ChangePropagator) BumpTableEtag(ctx context.Context, userID, tableID uint) (string, error) {
	etag, err := id.NewTableEtag()
	if err != nil {
		return "", fmt.Errorf("failed to generate table etag: %w", err)
	}

	existing, err := p.tableEtagRepo.GetByUserAndTable(ctx, userID, tableID)
	if err != nil {
		return "", fmt.Errorf("failed to get table etag: %w", err)
	}

	if existing == nil {
		if err := p.tableEtagRepo.Create(ctx, &tableobject.TableEtag{
			UserID:  userID,
			TableID: tableID,
			Etag:    etag,
		}); err != nil {
			return "", fmt.Errorf("failed to create table etag: %w", err)
		}
		return etag, nil
	}

	existing.Etag = etag
	if err := p.tableEtagRepo.Update(ctx, existing); err != nil {
		return "", fmt.Errorf("failed to update table etag: %w", err)
	}
	return etag, nil
}

// RegisterPropertyType records the property's type in the per-table registry
// the first time the name is seen. An existing entry is never updated: the
// first writer's type wins permanently, even when a later write carries a
// different runtime type. The mismatch is logged so the silent drop is at
// least observable.
func (p *ChangePropagator) RegisterPropertyType(ctx context.Context, tableID uint, name string, value tableobject.Value) error {
	existing, err := p.propertyTypeRepo.GetByTableAndName(ctx, tableID, name)
	if err != nil {
		return fmt.Errorf("failed to get property type: %w", err)
	}

	if existing == nil {
		return p.propertyTypeRepo.Create(ctx, &tableobject.PropertyType{
			TableID:  tableID,
			Name:     name,
			DataType: value.Kind,
		})
	}

	if existing.DataType != value.Kind {
		p.logger.Warnw("property type mismatch dropped, registry keeps first writer's type",
			"table_id", tableID, "name", name,
			"registered", existing.DataType, "written", value.Kind)
	}
	return nil
}

// SyncCache writes the denormalized snapshot and property shadow keys for the
// object. It never returns an error: on cache failure the operation is
// durably queued for the reconciliation job instead.
func (p *ChangePropagator) SyncCache(ctx context.Context, obj *tableobject.TableObject) {
	snap, shadows, err := p.buildSnapshot(ctx, obj)
	if err != nil {
		p.logger.Errorw("failed to build cache snapshot", "uuid", obj.UUID, "error", err)
		p.enqueue(ctx, obj.UUID, tableobject.CacheOperationSave)
		return
	}

	if err := p.cache.SaveObject(ctx, snap, shadows); err != nil {
		p.logger.Warnw("cache save failed, queuing retry", "uuid", obj.UUID, "error", err)
		p.enqueue(ctx, obj.UUID, tableobject.CacheOperationSave)
	}
}

// RemoveFromCache deletes the snapshot and shadow keys for the uuid. Like
// SyncCache, failures are queued rather than surfaced.
func (p *ChangePropagator) RemoveFromCache(ctx context.Context, uuid string) {
	if err := p.cache.DeleteObject(ctx, uuid); err != nil {
		p.logger.Warnw("cache delete failed, queuing retry", "uuid", uuid, "error", err)
		p.enqueue(ctx, uuid, tableobject.CacheOperationDelete)
	}
}

// DrainPendingOperations replays queued cache operations. Each entry is
// removed after its replay attempt; a replay that fails again enqueues a
// fresh entry through the normal sync path, so a perpetually-unreachable
// cache accumulates retries across runs rather than blocking the queue.
func (p *ChangePropagator) DrainPendingOperations(ctx context.Context) error {
	ops, err := p.pendingRepo.List(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to list pending cache operations: %w", err)
	}

	for _, op := range ops {
		switch op.Kind {
		case tableobject.CacheOperationDelete:
			p.RemoveFromCache(ctx, op.UUID)

		case tableobject.CacheOperationSave:
			obj, err := p.objectRepo.GetByUUID(ctx, op.UUID)
			if err != nil {
				p.logger.Errorw("failed to refetch object for pending save", "uuid", op.UUID, "error", err)
				continue
			}
			if obj != nil {
				p.SyncCache(ctx, obj)
			}
			// A deleted object is treated as drained: never resurrect it
			// into the cache.

		default:
			p.logger.Warnw("unknown pending cache operation kind", "kind", op.Kind, "uuid", op.UUID)
		}

		if err := p.pendingRepo.Delete(ctx, op.ID); err != nil {
			p.logger.Errorw("failed to remove pending cache operation", "id", op.ID, "error", err)
		}
	}

	return nil
}

// buildSnapshot assembles the typed snapshot for the cache. Property values
// are decoded through the per-table type registry; names with no registry
// entry decode as plain text.
func (p *ChangePropagator) buildSnapshot(ctx context.Context, obj *tableobject.TableObject) (*tableobject.ObjectSnapshot, []tableobject.PropertyShadow, error) {
	props := obj.Properties
	if props == nil {
		var err error
		props, err = p.objectRepo.GetProperties(ctx, obj.ID)
		if err != nil {
			return nil, nil, err
		}
	}

	types, err := p.propertyTypeRepo.ListByTable(ctx, obj.TableID)
	if err != nil {
		return nil, nil, err
	}
	typeByName := make(map[string]tableobject.DataType, len(types))
	for _, t := range types {
		typeByName[t.Name] = t.DataType
	}

	typed := make(map[string]any, len(props))
	shadows := make([]tableobject.PropertyShadow, 0, len(props))
	for _, prop := range props {
		dt := typeByName[prop.Name]
		typed[prop.Name] = tableobject.DecodeValue(prop.Value, dt)
		shadows = append(shadows, tableobject.PropertyShadow{
			UserID:   obj.UserID,
			TableID:  obj.TableID,
			UUID:     obj.UUID,
			Name:     prop.Name,
			DataType: dt,
		})
	}

	return &tableobject.ObjectSnapshot{
		ID:         obj.ID,
		UUID:       obj.UUID,
		UserID:     obj.UserID,
		TableID:    obj.TableID,
		File:       obj.File,
		Etag:       obj.Etag,
		Properties: typed,
	}, shadows, nil
}

func (p *ChangePropagator) enqueue(ctx context.Context, uuid string, kind tableobject.CacheOperationKind) {
	if err := p.pendingRepo.Create(ctx, &tableobject.PendingCacheOperation{
		UUID: uuid,
		Kind: kind,
	}); err != nil {
		p.logger.Errorw("failed to enqueue pending cache operation",
			"uuid", uuid, "kind", kind, "error", err)
	}
}
