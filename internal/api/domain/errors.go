package domain

import (
	"errors"
	"strings"
)

var (
	// ErrJobNotFound is returned when a referenced job does not exist
	ErrJobNotFound = errors.New("job not found")

	// ErrEmployeeNotFound is returned when a referenced employee does not exist
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrJobRoleNotFound is returned when a referenced job role does not exist
	ErrJobRoleNotFound = errors.New("job role not found")

	// ErrAssignmentNotFound is returned when a booking cannot be found
	ErrAssignmentNotFound = errors.New("booking not found")

	// ErrRoleJobMismatch is returned when a job role belongs to a different job
	// than the booking it is being attached to
	ErrRoleJobMismatch = errors.New("job role does not belong to this job")

	// ErrClientNotFound is returned when a client row is absent
	ErrClientNotFound = errors.New("client not found")

	// ErrInvalidCredentials is returned on a failed login; it deliberately does
	// not say whether the username or the password was wrong
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionNotFound is returned when a session token is unknown
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session token has passed its expiry
	ErrSessionExpired = errors.New("session expired")

	// ErrUserNotFound is returned when a user row is absent
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError carries field-level messages for form input that was
// rejected before touching the database.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
