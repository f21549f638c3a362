package service

import (
	"context"
	"strings"
	"unicode"

	"stuntcare/internal/cache"
	"stuntcare/internal/models"
	"stuntcare/internal/repository"
)

// DoctorService implements the read-only doctor directory.
type DoctorService struct {
	doctors repository.DoctorRepository
	cache   *cache.Cache
}

// NewDoctorService creates a DoctorService.
func NewDoctorService(doctors repository.DoctorRepository, c *cache.Cache) *DoctorService {
	return &DoctorService{doctors: doctors, cache: c}
}

// List returns the directory, optionally filtered by name. The filter
// upshifts the first letter of the query before the equality match, since
// stored names start capitalized. An empty result reports as not found.
func (s *DoctorService) List(ctx context.Context, name string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	var err error
	if name = strings.TrimSpace(name); name != "" {
		doctors, err = s.doctors.FindByName(ctx, upshiftFirst(name))
	} else {
		err = s.cache.Aside(ctx, cache.DoctorListKey, &doctors, cache.DoctorTTL, func() error {
			var ferr error
			doctors, ferr = s.doctors.List(ctx)
			return ferr
		})
	}
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, models.NewNotFoundError("Doctor list is empty")
	}
	return doctors, nil
}

// Get returns one doctor, cache-aside.
func (s *DoctorService) Get(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.cache.Aside(ctx, cache.DoctorKey(id), &doctor, cache.DoctorTTL, func() error {
		found, err := s.doctors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		doctor = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// upshiftFirst uppercases the first letter of the query and leaves the rest
// as typed.
func upshiftFirst(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
