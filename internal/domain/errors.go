package domain

import "errors"

// Sentinel error kinds. Services wrap these with context via fmt.Errorf and
// handlers classify with errors.Is.
var (
	// ErrNotAMember means the actor has no membership row in the workspace.
	ErrNotAMember = errors.New("not a workspace member")

	// ErrInsufficientRole means the actor's role ranks below the operation's minimum.
	ErrInsufficientRole = errors.New("insufficient role")

	// ErrNotFound means the referenced entity does not exist or is outside
	// the workspace scope.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means malformed or missing required fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable is fatal for the current request and never
	// retried here.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// IsForbidden reports whether err is one of the authorization failures.
// Both kinds collapse to the same opaque 403 at the API boundary so a caller
// cannot probe workspace membership; the distinction stays in logs.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrNotAMember) || errors.Is(err, ErrInsufficientRole)
}
