package core

import (
	"errors"
	"fmt"

	apperr "github.com/KirkDiggler/guild-verification-bot/internal/errors"
)

// HandlerError represents an error that occurred during handler execution
type HandlerError struct {
	// The underlying error
	Err error

	// User-friendly message to display
	UserMessage string

	// Whether this error should be shown to the user
	ShowToUser bool

	// HTTP-like status code for categorization
	Code int
}

// Error implements the error interface
func (e *HandlerError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMessage
}

// Unwrap returns the underlying error
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrorCodeBadRequest  = 400
	ErrorCodeForbidden   = 403
	ErrorCodeNotFound    = 404
	ErrorCodeGone        = 410
	ErrorCodeRateLimited = 429
	ErrorCodeInternal    = 500
	ErrorCodeUnavailable = 503
)

// NewHandlerError creates a new handler error
func NewHandlerError(err error, userMessage string, code int) *HandlerError {
	return &HandlerError{
		Err:         err,
		UserMessage: userMessage,
		ShowToUser:  true,
		Code:        code,
	}
}

// NewInternalError wraps an unexpected failure with the generic retry message
func NewInternalError(err error) *HandlerError {
	return &HandlerError{
		Err:         err,
		UserMessage: "An error occurred while processing your request. Please try again.",
		ShowToUser:  true,
		Code:        ErrorCodeInternal,
	}
}

// NewUserError creates an error with a user-friendly message
func NewUserError(message string, code int) *HandlerError {
	return &HandlerError{
		UserMessage: message,
		ShowToUser:  true,
		Code:        code,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *HandlerError {
	return &HandlerError{
		UserMessage: fmt.Sprintf("%s not found", resource),
		ShowToUser:  true,
		Code:        ErrorCodeNotFound,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *HandlerError {
	return &HandlerError{
		UserMessage: message,
		ShowToUser:  true,
		Code:        ErrorCodeBadRequest,
	}
}

// NewExpiredError rejects a click on a view whose buttons timed out
func NewExpiredError() *HandlerError {
	return &HandlerError{
		UserMessage: "This selection has expired.",
		ShowToUser:  true,
		Code:        ErrorCodeGone,
	}
}

// FromError converts a service error into the message the member sees.
// fallback is used for unexpected failures and should suggest a retry.
func FromError(err error, fallback string) *HandlerError {
	if err == nil {
		return nil
	}

	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) {
		return handlerErr
	}

	meta := apperr.GetMeta(err)
	operation, _ := meta[apperr.MetaOperation].(string)
	roleName, _ := meta[apperr.MetaRoleName].(string)

	switch apperr.GetCode(err) {
	case apperr.CodeValidation, apperr.CodeInvalidArgument:
		var appErr *apperr.Error
		errors.As(err, &appErr)
		return NewHandlerError(err, appErr.Message, ErrorCodeBadRequest)

	case apperr.CodePermissionDenied:
		action := "do that"
		switch operation {
		case apperr.OperationNickname:
			action = "change your nickname"
		case apperr.OperationRole:
			action = "assign roles"
		}
		return NewHandlerError(err,
			fmt.Sprintf("I don't have permission to %s. Please contact an administrator.", action),
			ErrorCodeForbidden)

	case apperr.CodeNotFound:
		if roleName != "" {
			return NewHandlerError(err,
				fmt.Sprintf("Could not find the %s role. Please contact an administrator.", roleName),
				ErrorCodeNotFound)
		}
		return NewHandlerError(err, "Something this step needs is missing. Please contact an administrator.", ErrorCodeNotFound)

	case apperr.CodeExpired:
		expired := NewExpiredError()
		expired.Err = err
		return expired

	case apperr.CodeUnavailable:
		return NewHandlerError(err, "This is currently unavailable. Please try again later.", ErrorCodeUnavailable)
	}

	return NewHandlerError(err, fallback, ErrorCodeInternal)
}
