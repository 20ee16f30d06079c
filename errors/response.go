package errors

import (
	stderrors "errors"
	"net/http"
)

// ErrorResponse is the JSON envelope returned to clients.
type ErrorResponse struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type classification struct {
	status  int
	message string
}

var classifications = map[ErrorCode]classification{
	ErrCodeValidationFailed:      {http.StatusBadRequest, "validation failed"},
	ErrCodeInvalidCredentials:    {http.StatusBadRequest, "invalid email or password"},
	ErrCodeTokenExpired:          {http.StatusUnauthorized, "token expired"},
	ErrCodeTokenMalformed:        {http.StatusUnauthorized, "token invalid or missing"},
	ErrCodeTokenSignatureInvalid: {http.StatusUnauthorized, "token invalid or missing"},
	ErrCodeForbidden:             {http.StatusForbidden, "access denied"},
	ErrCodeRateLimited:           {http.StatusTooManyRequests, "too many requests"},
	ErrCodeRouteNotFound:         {http.StatusNotFound, "not found"},
	ErrCodeMethodNotAllowed:      {http.StatusMethodNotAllowed, "method not allowed"},
	ErrCodeUnknown:               {http.StatusInternalServerError, "unknown error"},
}

var unknownClassification = classifications[ErrCodeUnknown]

// Classify maps any error to its HTTP status and client envelope.
// Errors that carry no AppError, and configuration errors, resolve to 500.
func Classify(err error) (int, ErrorResponse) {
	appErr, ok := AsAppError(err)
	if !ok {
		return unknownClassification.status, ErrorResponse{Message: unknownClassification.message}
	}

	c, known := classifications[appErr.Code]
	if !known {
		return unknownClassification.status, ErrorResponse{Message: unknownClassification.message}
	}

	resp := ErrorResponse{Message: c.message}
	if appErr.Code == ErrCodeValidationFailed {
		resp.Fields = append([]FieldError(nil), appErr.Fields...)
	}
	return c.status, resp
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
