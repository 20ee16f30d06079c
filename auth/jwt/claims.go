package jwt

import (
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the fixed payload of every issued token.
type Claims struct {
	gojwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SubjectID parses the subject claim as an account id.
func (c *Claims) SubjectID() (uuid.UUID, bool) {
	if c.Subject == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetRole returns the role claim.
func (c *Claims) GetRole() string { return c.Role }

// GetEmail returns the email claim.
func (c *Claims) GetEmail() string { return c.Email }
