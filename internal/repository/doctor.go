package repository

import (
	"context"
	"errors"

	"stuntcare/internal/models"
	"stuntcare/internal/observability"
	"stuntcare/internal/storage"
)

// DoctorRepository defines read operations for the doctor listing.
type DoctorRepository interface {
	List(ctx context.Context) ([]models.Doctor, error)
	FindByName(ctx context.Context, name string) ([]models.Doctor, error)
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
}

type doctorRepository struct {
	store storage.EntityStore
	log   *observability.StoreLogger
}

// NewDoctorRepository returns a new DoctorRepository implementation.
func NewDoctorRepository(store storage.EntityStore) DoctorRepository {
	return &doctorRepository{
		store: store,
		log:   observability.NewStoreLogger(string(storage.KindDoctor)),
	}
}

func (r *doctorRepository) List(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := r.store.List(ctx, storage.KindDoctor, &doctors); err != nil {
		r.log.LogError(ctx, err, "list")
		return nil, models.NewUpstreamError("Failed to list doctors", err)
	}
	return doctors, nil
}

func (r *doctorRepository) FindByName(ctx context.Context, name string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := r.store.Query(ctx, storage.KindDoctor, "name", name, &doctors); err != nil {
		r.log.LogError(ctx, err, "query")
		return nil, models.NewUpstreamError("Failed to search doctors", err)
	}
	return doctors, nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.store.Get(ctx, storage.KindDoctor, id, &doctor); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.NewNotFoundError("Doctor not found")
		}
		r.log.LogError(ctx, err, "get")
		return nil, models.NewUpstreamError("Failed to load doctor", err)
	}
	return &doctor, nil
}
