package server

import (
	"errors"
	"strings"

	"snsproject/internal/models"
	"snsproject/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired returns the authentication middleware. It accepts a Bearer
// token, resolves the user it names and stores the user name in locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || strings.TrimSpace(tokenString) == "" {
			return respondError(c, models.NewInvalidTokenError(errors.New("authorization required")))
		}

		claims, err := s.tokens.Parse(strings.TrimSpace(tokenString))
		if err != nil {
			return respondError(c, err)
		}

		user, err := s.userService.LoadUserByUserName(c.UserContext(), claims.UserName)
		if err != nil {
			if models.HasCode(err, models.CodeUserNotFound) {
				return respondError(c, models.NewInvalidTokenError(err))
			}
			return respondError(c, err)
		}

		c.Locals("userName", user.UserName)
		c.SetUserContext(observability.WithUserName(c.UserContext(), user.UserName))
		return c.Next()
	}
}
