package models

import (
	"errors"
	"fmt"
)

// Error codes. The set is closed; the transport maps each to a status.
const (
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodePostNotFound       = "POST_NOT_FOUND"
	CodeInvalidPermission  = "INVALID_PERMISSION"
	CodeAlreadyLiked       = "ALREADY_LIKED"
	CodeDuplicatedUserName = "DUPLICATED_USER_NAME"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	ResultCode string `json:"result_code"`
	Error      string `json:"error"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the AppError code carried by err, or CodeInternal.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given AppError code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func NewUserNotFoundError(userName string) *AppError {
	return &AppError{
		Code:    CodeUserNotFound,
		Message: fmt.Sprintf("%s not founded", userName),
	}
}

func NewPostNotFoundError(postID uint) *AppError {
	return &AppError{
		Code:    CodePostNotFound,
		Message: fmt.Sprintf("%d not founded", postID),
	}
}

func NewInvalidPermissionError(userName string, postID uint) *AppError {
	return &AppError{
		Code:    CodeInvalidPermission,
		Message: fmt.Sprintf("%s has no permission with %d", userName, postID),
	}
}

func NewAlreadyLikedError(userName string, postID uint) *AppError {
	return &AppError{
		Code:    CodeAlreadyLiked,
		Message: fmt.Sprintf("userName %s already like post %d", userName, postID),
	}
}

func NewDuplicatedUserNameError(userName string) *AppError {
	return &AppError{
		Code:    CodeDuplicatedUserName,
		Message: fmt.Sprintf("%s is duplicated", userName),
	}
}

func NewInvalidPasswordError() *AppError {
	return &AppError{
		Code:    CodeInvalidPassword,
		Message: "password is invalid",
	}
}

func NewInvalidTokenError(err error) *AppError {
	return &AppError{
		Code:    CodeInvalidToken,
		Message: "token is invalid",
		Err:     err,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}
