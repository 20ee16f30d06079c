package authz

import "strings"

// MatchPattern reports whether a "resource:action" pattern grants required.
// Either side may be "*". A pattern without a separator is compared whole.
func MatchPattern(pattern, required string) bool {
	if pattern == required || pattern == "*" || pattern == "*:*" {
		return true
	}

	patResource, patAction, patOK := strings.Cut(pattern, ":")
	reqResource, reqAction, reqOK := strings.Cut(required, ":")
	if !patOK || !reqOK {
		return false
	}
	return matchWildcard(patResource, reqResource) && matchWildcard(patAction, reqAction)
}

// MatchAny reports whether any pattern grants required.
func MatchAny(patterns []string, required string) bool {
	for _, p := range patterns {
		if MatchPattern(p, required) {
			return true
		}
	}
	return false
}

func matchWildcard(pattern, value string) bool {
	return pattern == "*" || pattern == value
}
