package service

import "errors"

// Errors returned by the services. Handlers map them to HTTP statuses;
// repository and driver errors never escape unwrapped.
var (
	// Unauthorized
	ErrUnauthenticated   = errors.New("authentication required")
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")

	// Conflict
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrListingExists = errors.New("listing already exists")

	// ValidationError
	ErrInvalidRequest     = errors.New("invalid request")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrRegistrationFailed = errors.New("registration failed")

	// Forbidden
	ErrNotListingOwner = errors.New("only the owner may modify this listing")

	// NotFound
	ErrStudentNotFound = errors.New("student not found")
	ErrListingNotFound = errors.New("listing not found")
)
