// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish failure
// scenarios: ErrForbidden means the current user does not own the resource,
// ErrDuplicate marks a unique-index violation, and ErrNotFound a missing row.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate is returned when an insert trips a unique index, e.g. two
// signups racing for the same username. Handlers map it to a field error.
var ErrDuplicate = errors.New("duplicate")

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// DuplicateError is an ErrDuplicate that also names the colliding column.
// The signup pre-checks are fail-open, so when the unique index fires the
// handler still needs to know which field to attach the error to.
type DuplicateError struct {
	Field string // username | email | phone | whatsapp, "" when unknown
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "duplicate"
	}
	return "duplicate " + e.Field
}

// Is lets errors.Is(err, ErrDuplicate) keep working for callers that do not
// care which column collided.
func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// isDuplicateKey reports whether err is a MySQL duplicate-entry error (1062).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}

// duplicateKeyField extracts the colliding column from a MySQL 1062 message,
// which carries the violated key name ("Duplicate entry 'x' for key
// 'users.email'"). Unknown index names map to the empty string.
func duplicateKeyField(err error) string {
	msg := strings.ToLower(err.Error())
	for _, field := range []string{"username", "email", "whatsapp", "phone"} {
		if strings.Contains(msg, field) {
			return field
		}
	}
	return ""
}
