package repository

import (
	"context"

	"stuntcare/internal/models"
	"stuntcare/internal/observability"
	"stuntcare/internal/storage"
)

// DailyFoodRepository defines persistence operations for food diary entries.
type DailyFoodRepository interface {
	ListByChild(ctx context.Context, childID string) ([]models.DailyFood, error)
	Create(ctx context.Context, entry *models.DailyFood) error
	BatchDelete(ctx context.Context, ids []string) error
}

type dailyFoodRepository struct {
	store storage.EntityStore
	log   *observability.StoreLogger
}

// NewDailyFoodRepository returns a new DailyFoodRepository implementation.
func NewDailyFoodRepository(store storage.EntityStore) DailyFoodRepository {
	return &dailyFoodRepository{
		store: store,
		log:   observability.NewStoreLogger(string(storage.KindDailyFood)),
	}
}

func (r *dailyFoodRepository) ListByChild(ctx context.Context, childID string) ([]models.DailyFood, error) {
	var entries []models.DailyFood
	if err := r.store.Query(ctx, storage.KindDailyFood, "child_id", childID, &entries); err != nil {
		r.log.LogError(ctx, err, "query")
		return nil, models.NewUpstreamError("Failed to list daily food", err)
	}
	return entries, nil
}

func (r *dailyFoodRepository) Create(ctx context.Context, entry *models.DailyFood) error {
	if err := r.store.Put(ctx, storage.KindDailyFood, entry.ID, entry); err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewUpstreamError("Failed to store daily food entry", err)
	}
	r.log.LogWrite(ctx, "create", entry.ID)
	return nil
}

func (r *dailyFoodRepository) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.store.BatchDelete(ctx, storage.KindDailyFood, ids); err != nil {
		r.log.LogError(ctx, err, "batch_delete")
		return models.NewUpstreamError("Failed to delete daily food entries", err)
	}
	return nil
}
