package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error with a stable HTTP status code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Unauthenticated means no valid credential was presented.
func Unauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

// Forbidden means the credential is valid but the role is insufficient.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

// Validation means the input is malformed.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Conflict means a uniqueness constraint was violated.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// NotFound means the referenced resource does not exist.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Storage wraps an underlying persistence failure.
func Storage(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Respond writes err as a JSON response. Errors that are not *Error are
// surfaced as a generic internal server error so storage details never leak.
func Respond(c *gin.Context, err error) {
	if appErr, ok := err.(*Error); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
