package server

import (
	"errors"

	"snsproject/internal/models"
	"snsproject/internal/observability"

	"github.com/gofiber/fiber/v2"
)

const resultCodeSuccess = "SUCCESS"

// Response is the envelope of every successful API response.
type Response struct {
	ResultCode string `json:"result_code"`
	Result     any    `json:"result,omitempty"`
}

func respondOK(c *fiber.Ctx, result any) error {
	return c.JSON(Response{ResultCode: resultCodeSuccess, Result: result})
}

// statusFor maps an error code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case models.CodeUserNotFound, models.CodePostNotFound:
		return fiber.StatusNotFound
	case models.CodeInvalidPermission:
		return fiber.StatusForbidden
	case models.CodeAlreadyLiked, models.CodeDuplicatedUserName:
		return fiber.StatusConflict
	case models.CodeInvalidPassword, models.CodeInvalidToken:
		return fiber.StatusUnauthorized
	case models.CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as the standard error body. Internal causes are logged, not returned.
func respondError(c *fiber.Ctx, err error) error {
	code := models.ErrorCode(err)
	message := "Internal server error"
	var appErr *models.AppError
	if errors.As(err, &appErr) && code != models.CodeInternal {
		message = appErr.Message
	}
	if code == models.CodeInternal {
		observability.Logger.ErrorContext(c.UserContext(), "request error",
			"path", c.Path(),
			"error", err,
		)
	}
	return c.Status(statusFor(code)).JSON(models.ErrorResponse{ResultCode: code, Error: message})
}

// parsePostID extracts the postId route parameter as a positive id.
func parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("postId")
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid post ID")
	}
	return uint(id), nil
}

// parsePageRequest reads the page, size and sort query parameters.
func parsePageRequest(c *fiber.Ctx) models.PageRequest {
	return models.PageRequest{
		Page: c.QueryInt("page", 0),
		Size: c.QueryInt("size", models.DefaultPageSize),
		Sort: c.Query("sort"),
	}.Normalize()
}

// currentUserName returns the user name set by AuthRequired.
func currentUserName(c *fiber.Ctx) string {
	name, _ := c.Locals("userName").(string)
	return name
}
