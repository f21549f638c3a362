package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"stuntcare/internal/models"
	"stuntcare/internal/repository"
	"stuntcare/internal/storage"
)

// ChildService implements child lifecycle and growth tracking.
type ChildService struct {
	parents    repository.ParentRepository
	children   repository.ChildRepository
	growth     repository.GrowthHistoryRepository
	media      *MediaWorkflow
	cascade    *CascadeCoordinator
	classifier GrowthClassifier
}

// NewChildService creates a ChildService.
func NewChildService(
	parents repository.ParentRepository,
	children repository.ChildRepository,
	growth repository.GrowthHistoryRepository,
	media *MediaWorkflow,
	cascade *CascadeCoordinator,
	classifier GrowthClassifier,
) *ChildService {
	return &ChildService{
		parents:    parents,
		children:   children,
		growth:     growth,
		media:      media,
		cascade:    cascade,
		classifier: classifier,
	}
}

// CreateChildInput carries the child creation form. Weight and height arrive
// as strings from the multipart form and are validated before any write.
type CreateChildInput struct {
	ParentID    string
	Name        string
	Gender      string
	BirthDay    string
	BirthWeight string
	BirthHeight string
	Weight      string
	Height      string
	Image       *ImageUpload
}

// List returns the children of one parent. The parent must exist.
func (s *ChildService) List(ctx context.Context, parentID string) ([]models.Child, error) {
	if _, err := s.parents.GetByID(ctx, parentID); err != nil {
		return nil, err
	}
	return s.children.ListByParent(ctx, parentID)
}

// Get returns one child, including its growth history.
func (s *ChildService) Get(ctx context.Context, parentID, childID string) (*models.Child, []models.GrowthHistory, error) {
	child, err := s.owned(ctx, parentID, childID)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.growth.ListByChild(ctx, childID)
	if err != nil {
		return nil, nil, err
	}
	return child, history, nil
}

// Create validates the measurements, stores the child under an id minted up
// front, appends the first growth record, and classifies the measurements.
// The parent is resolved first so a dangling parent id never gains children.
func (s *ChildService) Create(ctx context.Context, in CreateChildInput) (*models.Child, error) {
	if _, err := s.parents.GetByID(ctx, in.ParentID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	weight, height, err := parseMeasurements(in.Weight, in.Height)
	if err != nil {
		return nil, err
	}
	birthWeight, birthHeight, err := parseMeasurements(in.BirthWeight, in.BirthHeight)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := s.classifier.Classify(weight, height)
	child := &models.Child{
		ID:                      uuid.NewString(),
		ParentID:                in.ParentID,
		Name:                    in.Name,
		Gender:                  in.Gender,
		BirthDay:                in.BirthDay,
		BirthWeight:             birthWeight,
		BirthHeight:             birthHeight,
		Weight:                  weight,
		Height:                  height,
		StuntingStatus:          result.StuntingStatus,
		BMIStatus:               result.BMIStatus,
		FoodRecommendations:     result.FoodRecommendations,
		ActivityRecommendations: result.ActivityRecommendations,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	_, err = s.media.CreateWithMedia(ctx, string(storage.KindChild), in.ParentID, child.ID, in.Image, s.media.DefaultImageURL(),
		func(ctx context.Context, imageURL string) error {
			child.ImageURL = imageURL
			return s.children.Create(ctx, child)
		})
	if err != nil {
		return nil, err
	}

	// The first growth record mirrors the creation measurements. Every stored
	// measurement must have a matching history entry, so a failed append is a
	// reported upstream failure even though the child document is committed.
	if err := s.appendGrowth(ctx, child.ID, weight, height, now); err != nil {
		return nil, err
	}
	return child, nil
}

// UpdateChildInput carries the editable child fields. Empty strings leave the
// stored value untouched.
type UpdateChildInput struct {
	ParentID string
	ChildID  string
	Name     string
	Gender   string
	BirthDay string
	Weight   string
	Height   string
	Image    *ImageUpload
}

// Update applies a partial update. A change to weight or height re-runs the
// classifier and appends a growth record.
func (s *ChildService) Update(ctx context.Context, in UpdateChildInput) (*models.Child, error) {
	child, err := s.owned(ctx, in.ParentID, in.ChildID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fields := map[string]any{"updated_at": now}
	setIfPresent(fields, "name", in.Name)
	setIfPresent(fields, "gender", in.Gender)
	setIfPresent(fields, "birth_day", in.BirthDay)

	measured := in.Weight != "" || in.Height != ""
	weight, height := child.Weight, child.Height
	if measured {
		// Fall back to the current value when only one dimension changed.
		weightRaw, heightRaw := in.Weight, in.Height
		if weightRaw == "" {
			weightRaw = strconv.FormatFloat(child.Weight, 'f', -1, 64)
		}
		if heightRaw == "" {
			heightRaw = strconv.FormatFloat(child.Height, 'f', -1, 64)
		}
		weight, height, err = parseMeasurements(weightRaw, heightRaw)
		if err != nil {
			return nil, err
		}
		result := s.classifier.Classify(weight, height)
		fields["weight"] = weight
		fields["height"] = height
		fields["stunting_status"] = result.StuntingStatus
		fields["bmi_status"] = result.BMIStatus
		fields["food_recommendations"] = result.FoodRecommendations
		fields["activity_recommendations"] = result.ActivityRecommendations
		child.StuntingStatus = result.StuntingStatus
		child.BMIStatus = result.BMIStatus
		child.FoodRecommendations = result.FoodRecommendations
		child.ActivityRecommendations = result.ActivityRecommendations
	}

	priorURL := child.ImageURL
	if s.media.IsDefaultImage(priorURL) {
		priorURL = ""
	}
	imageURL, err := s.media.UpdateWithMedia(ctx, string(storage.KindChild), in.ParentID, in.ChildID, priorURL, in.Image,
		func(ctx context.Context, newURL string) error {
			if newURL != "" {
				fields["image_url"] = newURL
			}
			return s.children.Update(ctx, in.ChildID, fields)
		})
	if err != nil {
		return nil, err
	}

	if measured {
		if err := s.appendGrowth(ctx, in.ChildID, weight, height, now); err != nil {
			return nil, err
		}
	}

	if in.Name != "" {
		child.Name = in.Name
	}
	if in.Gender != "" {
		child.Gender = in.Gender
	}
	if in.BirthDay != "" {
		child.BirthDay = in.BirthDay
	}
	child.Weight = weight
	child.Height = height
	if imageURL != "" {
		child.ImageURL = imageURL
	}
	child.UpdatedAt = now
	return child, nil
}

// Delete cascades the child and everything it owns.
func (s *ChildService) Delete(ctx context.Context, parentID, childID string) (*DeletedSummary, error) {
	if _, err := s.owned(ctx, parentID, childID); err != nil {
		return nil, err
	}
	return s.cascade.DeleteChild(ctx, childID)
}

// owned resolves parent then child, so a missing parent and a missing child
// report distinctly. A child belonging to a different parent reads as absent.
func (s *ChildService) owned(ctx context.Context, parentID, childID string) (*models.Child, error) {
	if _, err := s.parents.GetByID(ctx, parentID); err != nil {
		return nil, err
	}
	child, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child.ParentID != parentID {
		return nil, models.NewNotFoundError("Child not found")
	}
	return child, nil
}

func (s *ChildService) appendGrowth(ctx context.Context, childID string, weight, height float64, at time.Time) error {
	record := &models.GrowthHistory{
		ID:        uuid.NewString(),
		ChildID:   childID,
		Weight:    weight,
		Height:    height,
		CreatedAt: at,
	}
	return s.growth.Append(ctx, record)
}

// parseMeasurements validates weight and height before anything is written.
func parseMeasurements(weightRaw, heightRaw string) (float64, float64, error) {
	weight, err := strconv.ParseFloat(strings.TrimSpace(weightRaw), 64)
	if err != nil || weight <= 0 {
		return 0, 0, models.NewValidationError("Weight must be a positive number")
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(heightRaw), 64)
	if err != nil || height <= 0 {
		return 0, 0, models.NewValidationError("Height must be a positive number")
	}
	return weight, height, nil
}
