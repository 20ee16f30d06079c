package auth

import (
	"strings"

	"github.com/google/uuid"
)

// Account roles carried in the role claim.
const (
	RoleAdmin = "Administrador"
	RoleUser  = "UsuarioComun"
)

// RoleFor returns the role claim value for an account.
func RoleFor(admin bool) string {
	if admin {
		return RoleAdmin
	}
	return RoleUser
}

// NormalizeEmail lowercases and trims an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TokenValidator validates a bearer token and returns the parsed claims.
// Middleware depends on this interface rather than on jwt.Validator.
//
// The returned value is stored in the request context via authctx.Set and
// retrieved with authctx.Get[T]. Failures are *errors.AppError values with a
// token code.
type TokenValidator interface {
	ValidateToken(token string) (any, error)
}

// TokenValidatorFunc adapts an ordinary function to the TokenValidator interface.
type TokenValidatorFunc func(token string) (any, error)

// ValidateToken implements TokenValidator.
func (f TokenValidatorFunc) ValidateToken(token string) (any, error) {
	return f(token)
}

// Identity is the view of validated claims used by handlers and authz.
type Identity interface {
	// SubjectID returns the account id, false when the subject is not a UUID.
	SubjectID() (uuid.UUID, bool)
	// GetRole returns the role claim.
	GetRole() string
	// GetEmail returns the email claim.
	GetEmail() string
}
