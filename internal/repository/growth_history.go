package repository

import (
	"context"

	"stuntcare/internal/models"
	"stuntcare/internal/observability"
	"stuntcare/internal/storage"
)

// GrowthHistoryRepository defines persistence operations for growth records.
// Records are append-only; deletion happens only through child cascades.
type GrowthHistoryRepository interface {
	ListByChild(ctx context.Context, childID string) ([]models.GrowthHistory, error)
	Append(ctx context.Context, record *models.GrowthHistory) error
	BatchDelete(ctx context.Context, ids []string) error
}

type growthHistoryRepository struct {
	store storage.EntityStore
	log   *observability.StoreLogger
}

// NewGrowthHistoryRepository returns a new GrowthHistoryRepository implementation.
func NewGrowthHistoryRepository(store storage.EntityStore) GrowthHistoryRepository {
	return &growthHistoryRepository{
		store: store,
		log:   observability.NewStoreLogger(string(storage.KindGrowthHistory)),
	}
}

func (r *growthHistoryRepository) ListByChild(ctx context.Context, childID string) ([]models.GrowthHistory, error) {
	var records []models.GrowthHistory
	if err := r.store.Query(ctx, storage.KindGrowthHistory, "child_id", childID, &records); err != nil {
		r.log.LogError(ctx, err, "query")
		return nil, models.NewUpstreamError("Failed to list growth history", err)
	}
	return records, nil
}

func (r *growthHistoryRepository) Append(ctx context.Context, record *models.GrowthHistory) error {
	if err := r.store.Put(ctx, storage.KindGrowthHistory, record.ID, record); err != nil {
		r.log.LogError(ctx, err, "append")
		return models.NewUpstreamError("Failed to store growth record", err)
	}
	r.log.LogWrite(ctx, "append", record.ID)
	return nil
}

func (r *growthHistoryRepository) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.store.BatchDelete(ctx, storage.KindGrowthHistory, ids); err != nil {
		r.log.LogError(ctx, err, "batch_delete")
		return models.NewUpstreamError("Failed to delete growth history", err)
	}
	return nil
}
