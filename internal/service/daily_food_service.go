package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"stuntcare/internal/models"
	"stuntcare/internal/repository"
	"stuntcare/internal/storage"
)

// DailyFoodService implements the per-child food diary.
type DailyFoodService struct {
	children repository.ChildRepository
	food     repository.DailyFoodRepository
	media    *MediaWorkflow
}

// NewDailyFoodService creates a DailyFoodService.
func NewDailyFoodService(children repository.ChildRepository, food repository.DailyFoodRepository, media *MediaWorkflow) *DailyFoodService {
	return &DailyFoodService{children: children, food: food, media: media}
}

// List returns the diary entries for a child of the given parent. An empty
// diary reports as not found so the client can show the "nothing logged yet"
// state.
func (s *DailyFoodService) List(ctx context.Context, parentID, childID string) ([]models.DailyFood, error) {
	if _, err := s.ownedChild(ctx, parentID, childID); err != nil {
		return nil, err
	}
	entries, err := s.food.ListByChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, models.NewNotFoundError("Catatan harian belum diisi")
	}
	return entries, nil
}

// CreateDailyFoodInput carries the diary entry form; the image is optional.
type CreateDailyFoodInput struct {
	ParentID string
	ChildID  string
	Schedule string
	FoodName string
	Image    *ImageUpload
}

// Create stores a diary entry for the child. Entries without an image keep an
// empty image URL rather than the sentinel placeholder.
func (s *DailyFoodService) Create(ctx context.Context, in CreateDailyFoodInput) (*models.DailyFood, error) {
	if _, err := s.ownedChild(ctx, in.ParentID, in.ChildID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.FoodName) == "" {
		return nil, models.NewValidationError("Food name is required")
	}
	if strings.TrimSpace(in.Schedule) == "" {
		return nil, models.NewValidationError("Schedule is required")
	}

	entry := &models.DailyFood{
		ID:        uuid.NewString(),
		ChildID:   in.ChildID,
		Schedule:  in.Schedule,
		FoodName:  in.FoodName,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.media.CreateWithMedia(ctx, string(storage.KindDailyFood), in.ChildID, entry.ID, in.Image, "",
		func(ctx context.Context, imageURL string) error {
			entry.ImageURL = imageURL
			return s.food.Create(ctx, entry)
		})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ownedChild resolves the child and checks it belongs to the parent. A child
// of another parent reads as absent.
func (s *DailyFoodService) ownedChild(ctx context.Context, parentID, childID string) (*models.Child, error) {
	child, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child.ParentID != parentID {
		return nil, models.NewNotFoundError("Child not found")
	}
	return child, nil
}
