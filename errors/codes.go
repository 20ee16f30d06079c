package errors

// ErrorCode identifies the kind of failure carried by an AppError.
type ErrorCode string

// Credential and token failures
const (
	// ErrCodeInvalidCredentials covers both an unknown account and a wrong password.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeTokenExpired indicates the bearer token is past its expiry.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeTokenMalformed indicates the bearer token is missing or cannot be decoded.
	ErrCodeTokenMalformed ErrorCode = "TOKEN_MALFORMED"
	// ErrCodeTokenSignatureInvalid indicates the token was not signed with the configured key.
	ErrCodeTokenSignatureInvalid ErrorCode = "TOKEN_SIGNATURE_INVALID"
	// ErrCodeForbidden indicates the caller's role does not grant access.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Request errors
const (
	// ErrCodeValidationFailed indicates one or more request fields are invalid.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrCodeRateLimited indicates the client sent too many requests.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeRouteNotFound indicates no route matches the request path.
	ErrCodeRouteNotFound ErrorCode = "ROUTE_NOT_FOUND"
	// ErrCodeMethodNotAllowed indicates the path exists but not for this method.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
)

// Internal errors
const (
	// ErrCodeUnknown covers every unclassified failure, including I/O errors.
	ErrCodeUnknown ErrorCode = "UNKNOWN"
	// ErrCodeConfiguration indicates invalid startup configuration. It is fatal.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
)

// IsTokenCode reports whether code is one of the bearer token failures.
func IsTokenCode(code ErrorCode) bool {
	switch code {
	case ErrCodeTokenExpired, ErrCodeTokenMalformed, ErrCodeTokenSignatureInvalid:
		return true
	}
	return false
}
