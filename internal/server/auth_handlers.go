package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"stuntcare/internal/auth"
	"stuntcare/internal/middleware"
	"stuntcare/internal/models"
	"stuntcare/internal/service"
)

// Register handles POST /register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Address  string `json:"address"`
		Gender   string `json:"gender"`
		BirthDay string `json:"birth_day"`
		Phone    string `json:"phone"`
		Status   string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	parent, err := s.parentService.Register(c.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Address:  req.Address,
		Gender:   req.Gender,
		BirthDay: req.BirthDay,
		Phone:    req.Phone,
		Status:   req.Status,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "Registration successful", parent)
}

// Login handles POST /login. The client sends either a fresh ID token or the
// raw credentials; both paths end in a session cookie.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		IDToken  string `json:"id_token"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	idToken := req.IDToken
	if idToken == "" {
		if req.Email == "" || req.Password == "" {
			return models.RespondWithError(c, models.NewValidationError("id_token or email and password required"))
		}
		token, err := s.provider.SignIn(c.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return models.RespondWithError(c, models.NewUnauthorizedError("Invalid email or password"))
			}
			return models.RespondWithError(c, models.NewUpstreamError("Login failed", err))
		}
		idToken = token
	}

	ttl := time.Duration(s.config.SessionTTLHours) * time.Hour
	cookie, err := s.provider.CreateSessionCookie(c.Context(), idToken, ttl)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid or expired token"))
		}
		return models.RespondWithError(c, models.NewUpstreamError("Login failed", err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    cookie,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production",
	})
	return models.Respond(c, fiber.StatusOK, "Login successful", nil)
}

// Logout handles GET /logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return models.Respond(c, fiber.StatusOK, "Logout successful", nil)
}
