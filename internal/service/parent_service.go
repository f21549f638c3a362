package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"stuntcare/internal/auth"
	"stuntcare/internal/models"
	"stuntcare/internal/observability"
	"stuntcare/internal/repository"
	"stuntcare/internal/storage"
)

// ParentService implements parent account lifecycle.
type ParentService struct {
	parents  repository.ParentRepository
	children repository.ChildRepository
	provider auth.Provider
	media    *MediaWorkflow
	cascade  *CascadeCoordinator
}

// NewParentService creates a ParentService.
func NewParentService(
	parents repository.ParentRepository,
	children repository.ChildRepository,
	provider auth.Provider,
	media *MediaWorkflow,
	cascade *CascadeCoordinator,
) *ParentService {
	return &ParentService{
		parents:  parents,
		children: children,
		provider: provider,
		media:    media,
		cascade:  cascade,
	}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Address  string
	Gender   string
	BirthDay string
	Phone    string
	Status   string
}

// ParentProfile is a parent together with its children summaries.
type ParentProfile struct {
	models.Parent
	Children []models.Child `json:"children"`
}

// Register creates the auth subject and the parent document as a pair. If the
// document write fails the auth subject is rolled back so registration can be
// retried with the same email.
func (s *ParentService) Register(ctx context.Context, in RegisterInput) (*models.Parent, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, models.NewValidationError("A valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, models.NewValidationError("Password must be at least 8 characters")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}

	uid, err := s.provider.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return nil, models.NewValidationError("Email is already registered")
		}
		return nil, models.NewUpstreamError("Registration failed", err)
	}

	now := time.Now().UTC()
	parent := &models.Parent{
		ID:        uuid.NewString(),
		Email:     in.Email,
		Name:      in.Name,
		Address:   in.Address,
		Gender:    in.Gender,
		BirthDay:  in.BirthDay,
		Phone:     in.Phone,
		Status:    in.Status,
		ImageURL:  s.media.DefaultImageURL(),
		AuthUID:   uid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.parents.Create(ctx, parent); err != nil {
		// Keep the 1:1 pairing: a parentless auth subject would block the
		// email forever.
		if delErr := s.provider.DeleteUser(ctx, uid); delErr != nil {
			observability.GlobalLogger.ErrorContext(ctx, "auth subject rollback failed",
				"uid", uid, "error", delErr.Error())
		}
		return nil, err
	}
	return parent, nil
}

// GetProfile returns the parent with its children embedded.
func (s *ParentService) GetProfile(ctx context.Context, parentID string) (*ParentProfile, error) {
	parent, err := s.parents.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	children, err := s.children.ListByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return &ParentProfile{Parent: *parent, Children: children}, nil
}

// GetByAuthUID resolves the parent owning an auth subject.
func (s *ParentService) GetByAuthUID(ctx context.Context, uid string) (*models.Parent, error) {
	return s.parents.GetByAuthUID(ctx, uid)
}

// UpdateProfileInput carries the editable profile fields; empty strings leave
// the stored value untouched.
type UpdateProfileInput struct {
	ParentID string
	Name     string
	Address  string
	Gender   string
	BirthDay string
	Phone    string
	Status   string
	Image    *ImageUpload
}

// UpdateProfile applies a partial profile update, replacing the stored image
// through the media workflow when one is uploaded.
func (s *ParentService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Parent, error) {
	parent, err := s.parents.GetByID(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	setIfPresent(fields, "name", in.Name)
	setIfPresent(fields, "address", in.Address)
	setIfPresent(fields, "gender", in.Gender)
	setIfPresent(fields, "birth_day", in.BirthDay)
	setIfPresent(fields, "phone", in.Phone)
	setIfPresent(fields, "status", in.Status)

	priorURL := parent.ImageURL
	if s.media.IsDefaultImage(priorURL) {
		priorURL = ""
	}
	imageURL, err := s.media.UpdateWithMedia(ctx, string(storage.KindParent), in.ParentID, in.ParentID, priorURL, in.Image,
		func(ctx context.Context, newURL string) error {
			if newURL != "" {
				fields["image_url"] = newURL
			}
			return s.parents.Update(ctx, in.ParentID, fields)
		})
	if err != nil {
		return nil, err
	}

	if imageURL != "" {
		parent.ImageURL = imageURL
	}
	applyParentFields(parent, in)
	return parent, nil
}

// Delete removes the parent and everything it owns.
func (s *ParentService) Delete(ctx context.Context, parentID string) (*DeletedSummary, error) {
	parent, err := s.parents.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	summary, err := s.cascade.DeleteParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	// The document cascade succeeded; the auth subject goes last so a crash
	// above leaves a login that still resolves to a (partially deleted)
	// account rather than an orphaned credential.
	if err := s.provider.DeleteUser(ctx, parent.AuthUID); err != nil {
		observability.GlobalLogger.ErrorContext(ctx, "auth subject delete failed",
			"uid", parent.AuthUID, "error", err.Error())
	}
	return summary, nil
}

func setIfPresent(fields map[string]any, key, value string) {
	if value != "" {
		fields[key] = value
	}
}

func applyParentFields(parent *models.Parent, in UpdateProfileInput) {
	if in.Name != "" {
		parent.Name = in.Name
	}
	if in.Address != "" {
		parent.Address = in.Address
	}
	if in.Gender != "" {
		parent.Gender = in.Gender
	}
	if in.BirthDay != "" {
		parent.BirthDay = in.BirthDay
	}
	if in.Phone != "" {
		parent.Phone = in.Phone
	}
	if in.Status != "" {
		parent.Status = in.Status
	}
	parent.UpdatedAt = time.Now().UTC()
}
