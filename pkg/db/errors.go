package db

import "strings"

// IsUniqueViolation reports whether err references a unique constraint
// violation. The registration flow checks uniqueness up front, but a
// concurrent insert can still trip the database constraint; callers use this
// to translate that into the same field-scoped error.
func IsUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if column == "" {
		return true
	}
	return strings.Contains(msg, column)
}
