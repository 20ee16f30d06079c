package errors

import (
	"fmt"
	"strings"
)

// FieldError describes one invalid request field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// AppError is the unified application error type.
type AppError struct {
	// Code is the machine-readable failure kind.
	Code ErrorCode `json:"code"`
	// Message is an internal description used in logs. It is never sent to clients.
	Message string `json:"message"`
	// Fields lists per-field reasons for ErrCodeValidationFailed.
	Fields []FieldError `json:"fields,omitempty"`
	// Details contains additional context for logging.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithField appends a field error and returns the receiver.
func (e *AppError) WithField(field, reason string) *AppError {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors, one per failure kind ---

// InvalidCredentials creates the failure returned for an unknown account or a wrong password.
func InvalidCredentials() *AppError {
	return &AppError{Code: ErrCodeInvalidCredentials, Message: "invalid credentials"}
}

// TokenExpired creates a failure for a bearer token past its expiry.
func TokenExpired() *AppError {
	return &AppError{Code: ErrCodeTokenExpired, Message: "token expired"}
}

// TokenMalformed creates a failure for a missing or undecodable bearer token.
func TokenMalformed(reason string) *AppError {
	if reason == "" {
		reason = "token malformed"
	}
	return &AppError{Code: ErrCodeTokenMalformed, Message: reason}
}

// TokenSignatureInvalid creates a failure for a token signed with a foreign key.
func TokenSignatureInvalid() *AppError {
	return &AppError{Code: ErrCodeTokenSignatureInvalid, Message: "token signature invalid"}
}

// Forbidden creates a failure for an authenticated caller lacking the required role.
func Forbidden(reason string) *AppError {
	if reason == "" {
		reason = "access denied"
	}
	return &AppError{Code: ErrCodeForbidden, Message: reason}
}

// ValidationFailed creates a failure carrying the given field errors.
func ValidationFailed(fields ...FieldError) *AppError {
	return &AppError{Code: ErrCodeValidationFailed, Message: "validation failed", Fields: fields}
}

// RateLimited creates a failure for a throttled client.
func RateLimited() *AppError {
	return &AppError{Code: ErrCodeRateLimited, Message: "rate limit exceeded"}
}

// RouteNotFound creates a failure for a request no route matches.
func RouteNotFound(method, path string) *AppError {
	return &AppError{Code: ErrCodeRouteNotFound, Message: "no route for " + method + " " + path}
}

// MethodNotAllowed creates a failure for a known path requested with the wrong method.
func MethodNotAllowed(method, path string) *AppError {
	return &AppError{Code: ErrCodeMethodNotAllowed, Message: method + " not allowed on " + path}
}

// Unknown wraps an unclassified failure.
func Unknown(cause error) *AppError {
	return &AppError{Code: ErrCodeUnknown, Message: "unknown error", Cause: cause}
}

// Configuration creates a fatal startup failure for the named setting.
func Configuration(setting, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("invalid configuration %s: %s", setting, reason),
		Details: map[string]any{"setting": setting},
	}
}

// Wrap converts any error into an AppError. AppErrors anywhere in the chain
// are returned as-is; everything else becomes Unknown.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Unknown(err)
}

// CodeOf returns the ErrorCode of err, or ErrCodeUnknown when err carries none.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeUnknown
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// FieldNames returns the invalid field names joined for log output.
func (e *AppError) FieldNames() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return strings.Join(names, ",")
}
