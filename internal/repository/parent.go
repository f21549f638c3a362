// Package repository implements the data access layer over the document store.
package repository

import (
	"context"
	"errors"

	"stuntcare/internal/models"
	"stuntcare/internal/observability"
	"stuntcare/internal/storage"
)

// ParentRepository defines persistence operations for parents.
type ParentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Parent, error)
	GetByAuthUID(ctx context.Context, uid string) (*models.Parent, error)
	Create(ctx context.Context, parent *models.Parent) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type parentRepository struct {
	store storage.EntityStore
	log   *observability.StoreLogger
}

// NewParentRepository returns a new ParentRepository implementation.
func NewParentRepository(store storage.EntityStore) ParentRepository {
	return &parentRepository{
		store: store,
		log:   observability.NewStoreLogger(string(storage.KindParent)),
	}
}

func (r *parentRepository) GetByID(ctx context.Context, id string) (*models.Parent, error) {
	var parent models.Parent
	if err := r.store.Get(ctx, storage.KindParent, id, &parent); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.NewNotFoundError("Parent not found")
		}
		r.log.LogError(ctx, err, "get")
		return nil, models.NewUpstreamError("Failed to load parent", err)
	}
	return &parent, nil
}

func (r *parentRepository) GetByAuthUID(ctx context.Context, uid string) (*models.Parent, error) {
	var parents []models.Parent
	if err := r.store.Query(ctx, storage.KindParent, "auth_uid", uid, &parents); err != nil {
		r.log.LogError(ctx, err, "query")
		return nil, models.NewUpstreamError("Failed to load parent", err)
	}
	if len(parents) == 0 {
		return nil, models.NewNotFoundError("Parent not found")
	}
	return &parents[0], nil
}

func (r *parentRepository) Create(ctx context.Context, parent *models.Parent) error {
	if err := r.store.Put(ctx, storage.KindParent, parent.ID, parent); err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewUpstreamError("Failed to store parent", err)
	}
	r.log.LogWrite(ctx, "create", parent.ID)
	return nil
}

func (r *parentRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, storage.KindParent, id, fields); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NewNotFoundError("Parent not found")
		}
		r.log.LogError(ctx, err, "update")
		return models.NewUpstreamError("Failed to update parent", err)
	}
	r.log.LogWrite(ctx, "update", id)
	return nil
}

func (r *parentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, storage.KindParent, id); err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewUpstreamError("Failed to delete parent", err)
	}
	r.log.LogDelete(ctx, id)
	return nil
}
