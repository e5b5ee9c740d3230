package application

import "errors"

// Domain errors surfaced to the request boundary. Handlers translate these
// into flash-message redirects or envelope errors; they never reach the
// browser as raw errors.
var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	ErrEmptyTitle   = errors.New("title is required")
	ErrTaskNotFound = errors.New("task not found")
	ErrAccessDenied = errors.New("access denied")
)
