// Package authz decides whether a role may perform an action.
//
// Permissions use the "resource:action" format with wildcard patterns
// ("accounts:*" matches "accounts:list"). DefaultPolicy maps the service's
// two roles to their patterns:
//
//	checker := authz.NewMapChecker(authz.DefaultPolicy())
//	err := authz.Authorize(checker, claims.Role, authz.PermAccountsList)
package authz
