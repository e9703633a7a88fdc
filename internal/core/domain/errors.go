package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of these so
// callers can classify it with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrCorrupt            = errors.New("corrupt record")
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

var (
	ErrPollNotFound       = fmt.Errorf("poll %w", ErrNotFound)
	ErrOrganizerNotFound  = fmt.Errorf("organizer %w", ErrNotFound)
	ErrNotPollOwner       = fmt.Errorf("%w: poll belongs to another organizer", ErrForbidden)
	ErrMissingOrganizer   = fmt.Errorf("%w: organizer session required", ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrPollClosed         = fmt.Errorf("%w: poll is closed", ErrConflict)
	ErrPollPaused         = fmt.Errorf("%w: poll is paused", ErrConflict)
	ErrPollNotClosed      = fmt.Errorf("%w: poll is not closed", ErrConflict)
	ErrUsernameTaken      = fmt.Errorf("%w: username already exists", ErrConflict)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
