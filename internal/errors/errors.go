package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Registration errors
	ErrMissingField = NewDomainError("MISSING_FIELD", "required field missing")
	ErrEmailExists  = NewDomainError("EMAIL_EXISTS", "email already registered")
	ErrInvalidRole  = NewDomainError("INVALID_ROLE", "role must be student, teacher or worker")
	ErrInvalidOTP   = NewDomainError("INVALID_OTP", "invalid or expired otp")

	// Session errors
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid email or password")
	ErrAccountUnverified  = NewDomainError("ACCOUNT_UNVERIFIED", "account not verified, check your email for the otp")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrTokenRevoked       = NewDomainError("UNAUTHORIZED", "token has been logged out")
	ErrForbidden          = NewDomainError("FORBIDDEN", "insufficient role for this operation")

	// Recovery errors
	ErrUserNotFound = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrResetInvalid = NewDomainError("RESET_INVALID", "invalid or expired reset token")

	// System errors
	ErrMailDelivery = NewDomainError("MAIL_DELIVERY_FAILED", "failed to deliver notification email")
	ErrInternal     = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "MISSING_FIELD", "INVALID_ROLE", "INVALID_OTP", "RESET_INVALID":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_CREDENTIALS":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN", "ACCOUNT_UNVERIFIED":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS":
		return http.StatusConflict

	// 502 Bad Gateway
	case "MAIL_DELIVERY_FAILED":
		return http.StatusBadGateway

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
