package server

import (
	"github.com/gofiber/fiber/v2"

	"stuntcare/internal/models"
)

// ListDoctors handles GET /doctors?name=...
func (s *Server) ListDoctors(c *fiber.Ctx) error {
	doctors, err := s.doctorService.List(c.Context(), c.Query("name"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Doctors retrieved", doctors)
}

// GetDoctor handles GET /doctors/:id.
func (s *Server) GetDoctor(c *fiber.Ctx) error {
	doctor, err := s.doctorService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Doctor retrieved", doctor)
}
