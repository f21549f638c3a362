package server

import (
	"github.com/gofiber/fiber/v2"

	"stuntcare/internal/models"
	"stuntcare/internal/service"
)

// ListChildren handles GET /parent/:userId/child.
func (s *Server) ListChildren(c *fiber.Ctx) error {
	parentID, ok := s.requireOwnParent(c)
	if !ok {
		return nil
	}
	children, err := s.childService.List(c.Context(), parentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Children retrieved", children)
}

// CreateChild handles POST /parent/:userId/child (multipart, image optional).
func (s *Server) CreateChild(c *fiber.Ctx) error {
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
	child, err := s.childService.Create(ctx, service.CreateChildInput{
		ParentID:    parentID,
		Name:        c.FormValue("name"),
		Gender:      c.FormValue("gender"),
		BirthDay:    c.FormValue("birth_day"),
		BirthWeight: c.FormValue("birth_weight"),
		BirthHeight: c.FormValue("birth_height"),
		Weight:      c.FormValue("weight"),
		Height:      c.FormValue("height"),
		Image:       image,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "Child created", child)
}

// GetChild handles GET /parent/:userId/child/:id.
func (s *Server) GetChild(c *fiber.Ctx) error {
	parentID, ok := s.requireOwnParent(c)
	if !ok {
		return nil
	}
	child, history, err := s.childService.Get(c.Context(), parentID, c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Child retrieved", fiber.Map{
		"child":          child,
		"growth_history": history,
	})
}

// UpdateChild handles PUT /parent/:userId/child/:id.
func (s *Server) UpdateChild(c *fiber.Ctx) error {
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
	child, err := s.childService.Update(ctx, service.UpdateChildInput{
		ParentID: parentID,
		ChildID:  c.Params("id"),
		Name:     c.FormValue("name"),
		Gender:   c.FormValue("gender"),
		BirthDay: c.FormValue("birth_day"),
		Weight:   c.FormValue("weight"),
		Height:   c.FormValue("height"),
		Image:    image,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Child updated", child)
}

// DeleteChild handles DELETE /parent/:userId/child/:id.
func (s *Server) DeleteChild(c *fiber.Ctx) error {
	parentID, ok := s.requireOwnParent(c)
	if !ok {
		return nil
	}
	ctx, cancel := s.requestContext(c)
	defer cancel()
	summary, err := s.childService.Delete(ctx, parentID, c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Child deleted", summary)
}
