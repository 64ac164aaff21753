package services

import (
	"errors"
	"fmt"
)

// ===== SENTINEL ERRORS =====

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrScholarshipNotFound = errors.New("scholarship not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrReviewNotFound      = errors.New("review not found")

	// ErrNoFieldsToUpdate is returned when an update request contains no
	// allow-listed field, so applying it would change nothing.
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")
)

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrScholarshipNotFound) ||
		errors.Is(err, ErrApplicationNotFound) ||
		errors.Is(err, ErrReviewNotFound)
}

// ===== PERMISSION ERRORS =====

// PermissionError is returned when the caller's role or ownership does not
// cover the attempted operation.
type PermissionError struct {
	UserEmail  string
	Resource   string
	ResourceID uint
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s cannot %s %s (%s)", e.UserEmail, e.Action, e.Resource, e.Reason)
}

func NewPermissionError(userEmail, resource string, resourceID uint, action, reason string) *PermissionError {
	return &PermissionError{
		UserEmail:  userEmail,
		Resource:   resource,
		ResourceID: resourceID,
		Action:     action,
		Reason:     reason,
	}
}

func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// ===== INPUT ERRORS =====

// InvalidInputError is returned for malformed or rejected client input that
// is not covered by struct tag validation.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func NewInvalidInputError(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

func IsInvalidInputError(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie) || errors.Is(err, ErrNoFieldsToUpdate)
}
