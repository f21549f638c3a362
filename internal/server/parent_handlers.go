package server

import (
	"github.com/gofiber/fiber/v2"

	"stuntcare/internal/models"
	"stuntcare/internal/service"
)

// GetParent handles GET /parent/:userId.
func (s *Server) GetParent(c *fiber.Ctx) error {
	parentID, ok := s.requireOwnParent(c)
	if !ok {
		return nil
	}
	profile, err := s.parentService.GetProfile(c.Context(), parentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Parent retrieved", profile)
}

// UpdateParent handles PUT /parent/:userId (multipart, image optional).
func (s *Server) UpdateParent(c *fiber.Ctx) error {
	parentID, ok := s.requireOwnParent(c)
	if !ok {
		return nil
	}
	image, err := formImage(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()
	parent, err := s.parentService.UpdateProfile(ctx, service.UpdateProfileInput{
		ParentID: parentID,
		Name:     c.FormValue("name"),
		Address:  c.FormValue("address"),
		Gender:   c.FormValue("gender"),
		BirthDay: c.FormValue("birth_day"),
		Phone:    c.FormValue("phone"),
		Status:   c.FormValue("status"),
		Image:    image,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Parent updated", parent)
}

// DeleteParent handles DELETE /parent/:userId.
func (s *Server) DeleteParent(c *fiber.Ctx) error {
	parentID, ok := s.requireOwnParent(c)
	if !ok {
		return nil
	}
	ctx, cancel := s.requestContext(c)
	defer cancel()
	summary, err := s.parentService.Delete(ctx, parentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Parent deleted", summary)
}
