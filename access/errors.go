package access

import "errors"

var (
	// ErrSelfGrant is returned when a grant or revoke names the same
	// address on both sides. Self-access is implicit and unrevokable.
	ErrSelfGrant = errors.New("access: self grant")

	// ErrAlreadyGranted is returned when the grant edge already exists.
	// Duplicate grants fail loudly rather than being silently ignored.
	ErrAlreadyGranted = errors.New("access: already granted")

	// ErrNotGranted is returned when revoking an edge that does not exist.
	ErrNotGranted = errors.New("access: not granted")

	// ErrAccessDenied is returned when an account tries to activate a
	// balance it holds no grant for.
	ErrAccessDenied = errors.New("access: access denied")
)
