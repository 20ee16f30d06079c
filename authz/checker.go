package authz

import (
	"github.com/biduedson/reservas-api/auth"
	"github.com/biduedson/reservas-api/errors"
)

// Permissions checked by the HTTP routes.
const (
	PermProfileRead  = "profile:read"
	PermAccountsList = "accounts:list"
)

// Checker reports whether a role holds a permission.
type Checker interface {
	HasPermission(role string, permission string) bool
}

// CheckerFunc is an adapter to use ordinary functions as Checker.
type CheckerFunc func(role string, permission string) bool

// HasPermission implements Checker.
func (f CheckerFunc) HasPermission(role string, permission string) bool {
	return f(role, permission)
}

// MapChecker is an immutable role -> permission patterns table.
type MapChecker struct {
	permissions map[string][]string
}

// NewMapChecker copies permissions into a new checker.
func NewMapChecker(permissions map[string][]string) *MapChecker {
	copied := make(map[string][]string, len(permissions))
	for role, patterns := range permissions {
		copied[role] = append([]string(nil), patterns...)
	}
	return &MapChecker{permissions: copied}
}

// HasPermission implements Checker. Unknown roles hold nothing.
func (c *MapChecker) HasPermission(role string, required string) bool {
	patterns, ok := c.permissions[role]
	if !ok {
		return false
	}
	return MatchAny(patterns, required)
}

// DefaultPolicy grants administrators everything and regular users their
// own profile.
func DefaultPolicy() map[string][]string {
	return map[string][]string{
		auth.RoleAdmin: {"*:*"},
		auth.RoleUser:  {PermProfileRead},
	}
}

// Authorize returns a Forbidden error when role lacks permission.
func Authorize(checker Checker, role, permission string) error {
	if checker.HasPermission(role, permission) {
		return nil
	}
	return errors.Forbidden("role lacks permission").
		WithDetail("role", role).
		WithDetail("permission", permission)
}
