package server

import (
	"github.com/gofiber/fiber/v2"

	"stuntcare/internal/models"
	"stuntcare/internal/service"
)

// ListDailyFood handles GET /parent/:userId/child/:id/food.
func (s *Server) ListDailyFood(c *fiber.Ctx) error {
	parentID, ok := s.requireOwnParent(c)
	if !ok {
		return nil
	}
	entries, err := s.foodService.List(c.Context(), parentID, c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Daily food retrieved", entries)
}

// CreateDailyFood handles POST /parent/:userId/child/:id/food (multipart,
// image optional).
func (s *Server) CreateDailyFood(c *fiber.Ctx) error {
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
	entry, err := s.foodService.Create(ctx, service.CreateDailyFoodInput{
		ParentID: parentID,
		ChildID:  c.Params("id"),
		Schedule: c.FormValue("schedule"),
		FoodName: c.FormValue("food_name"),
		Image:    image,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "Daily food created", entry)
}
