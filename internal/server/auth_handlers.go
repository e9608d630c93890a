package server

import (
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup. A successful signup logs the user
// in immediately: the response sets the session cookie.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, session, err := s.authService.Signup(c.UserContext(), req.Name, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	s.setSessionCookie(c, session)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user.Public(),
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, session, err := s.authService.Login(c.UserContext(), req.Name, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	s.setSessionCookie(c, session)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": user.Public(),
	})
}

// Logout handles POST /api/auth/logout. Always succeeds: logging out
// without a session is a no-op, not an error.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.authService.Logout(c.UserContext(), c.Cookies(SessionCookie)); err != nil {
		return models.RespondWithAppError(c, err)
	}

	s.clearSessionCookie(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}

// Me handles GET /api/auth/me
func (s *Server) Me(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": user.Public(),
	})
}
