package server

import (
	"snsproject/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UserRequest is the body of join and login.
type UserRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Join handles POST /api/v1/users/join
func (s *Server) Join(c *fiber.Ctx) error {
	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Join(c.UserContext(), req.UserName, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, user)
}

// Login handles POST /api/v1/users/login. An unknown user and a wrong
// password produce the same response.
func (s *Server) Login(c *fiber.Ctx) error {
	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	token, err := s.userService.Login(c.UserContext(), req.UserName, req.Password)
	if err != nil {
		if models.HasCode(err, models.CodeUserNotFound) || models.HasCode(err, models.CodeInvalidPassword) {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				ResultCode: models.CodeInvalidPassword,
				Error:      "invalid credentials",
			})
		}
		return respondError(c, err)
	}
	return respondOK(c, LoginResponse{Token: token})
}
