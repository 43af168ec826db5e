// Package apierror defines the typed application error used across the
// service and handler layers. Every error a client may see goes through this
// package so that internal details (stack traces, DB errors) never leak.
package apierror

import "net/http"

// Error is the canonical application error: a message safe to show to the
// client plus the HTTP status it maps to. Handlers serialize exactly this
// type; anything else is treated as unexpected and rendered as a generic 500.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *Error) Error() string { return e.Message }

func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// Sentinel errors for the full taxonomy. Login failures are deliberately
// collapsed into one value: unknown email, wrong password and inactive user
// must be indistinguishable to the caller.
var (
	ErrInvalidCredentials      = New(http.StatusUnauthorized, "invalid credentials")
	ErrAuthenticationRequired  = New(http.StatusUnauthorized, "authentication required")
	ErrAuthenticationFailed    = New(http.StatusUnauthorized, "authentication failed")
	ErrInvalidRefreshToken     = New(http.StatusUnauthorized, "invalid refresh token")
	ErrTokenRefreshFailed      = New(http.StatusUnauthorized, "token refresh failed")
	ErrInsufficientPermissions = New(http.StatusForbidden, "insufficient permissions")
	ErrAccessDenied            = New(http.StatusForbidden, "access denied to this business")
	ErrBusinessIDRequired      = New(http.StatusBadRequest, "business id is required")
	ErrUserNotFound            = New(http.StatusNotFound, "user not found")
	ErrBusinessNotFound        = New(http.StatusNotFound, "business not found")
	ErrEmailExists             = New(http.StatusConflict, "email already registered")
)

// Response is the JSON envelope for every API reply.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Fail builds the failure envelope for an error message.
func Fail(msg string) Response {
	return Response{Success: false, Error: msg}
}

// OK builds the success envelope for a payload.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// ValidationResponse carries per-field validation failures.
type ValidationResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) ValidationResponse {
	return ValidationResponse{Success: false, Error: "validation failed", Fields: fields}
}
