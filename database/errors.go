package database

import (
	stderrors "errors"
	"strings"

	"gorm.io/gorm"
)

// IsConnectionError reports whether err looks like a lost or refused connection.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"i/o timeout",
		"no route to host",
		"network is unreachable",
		"driver: bad connection",
		"database is closed",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// IsNotFoundError reports whether err is gorm's record-not-found.
func IsNotFoundError(err error) bool {
	return stderrors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err is a unique-key violation.
// It relies on gorm's TranslateError, which New enables.
func IsDuplicateError(err error) bool {
	return stderrors.Is(err, gorm.ErrDuplicatedKey)
}
