package repository

import (
	"context"
	"errors"

	"stuntcare/internal/models"
	"stuntcare/internal/observability"
	"stuntcare/internal/storage"
)

// ChildRepository defines persistence operations for children.
type ChildRepository interface {
	GetByID(ctx context.Context, id string) (*models.Child, error)
	ListByParent(ctx context.Context, parentID string) ([]models.Child, error)
	Create(ctx context.Context, child *models.Child) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	BatchDelete(ctx context.Context, ids []string) error
}

type childRepository struct {
	store storage.EntityStore
	log   *observability.StoreLogger
}

// NewChildRepository returns a new ChildRepository implementation.
func NewChildRepository(store storage.EntityStore) ChildRepository {
	return &childRepository{
		store: store,
		log:   observability.NewStoreLogger(string(storage.KindChild)),
	}
}

func (r *childRepository) GetByID(ctx context.Context, id string) (*models.Child, error) {
	var child models.Child
	if err := r.store.Get(ctx, storage.KindChild, id, &child); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.NewNotFoundError("Child not found")
		}
		r.log.LogError(ctx, err, "get")
		return nil, models.NewUpstreamError("Failed to load child", err)
	}
	return &child, nil
}

func (r *childRepository) ListByParent(ctx context.Context, parentID string) ([]models.Child, error) {
	var children []models.Child
	if err := r.store.Query(ctx, storage.KindChild, "parent_id", parentID, &children); err != nil {
		r.log.LogError(ctx, err, "query")
		return nil, models.NewUpstreamError("Failed to list children", err)
	}
	return children, nil
}

func (r *childRepository) Create(ctx context.Context, child *models.Child) error {
	if err := r.store.Put(ctx, storage.KindChild, child.ID, child); err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewUpstreamError("Failed to store child", err)
	}
	r.log.LogWrite(ctx, "create", child.ID)
	return nil
}

func (r *childRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, storage.KindChild, id, fields); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NewNotFoundError("Child not found")
		}
		r.log.LogError(ctx, err, "update")
		return models.NewUpstreamError("Failed to update child", err)
	}
	r.log.LogWrite(ctx, "update", id)
	return nil
}

func (r *childRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, storage.KindChild, id); err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewUpstreamError("Failed to delete child", err)
	}
	r.log.LogDelete(ctx, id)
	return nil
}

func (r *childRepository) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.store.BatchDelete(ctx, storage.KindChild, ids); err != nil {
		r.log.LogError(ctx, err, "batch_delete")
		return models.NewUpstreamError("Failed to delete children", err)
	}
	return nil
}
