package utils

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrDatabaseError   = errors.New("database error")
	ErrUpstreamError   = errors.New("upstream service error")

	// identity
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already in use")
	ErrPasswordMismatch   = errors.New("current password is incorrect")

	// accounts
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountNameExists    = errors.New("account with this name already exists")
	ErrAccountAddressExists = errors.New("account with this address already exists")
	ErrAccountConflict      = errors.New("account name or address already exists")
	ErrAccountVerified      = errors.New("account is already verified")
	ErrAccountNotVerified   = errors.New("account is not verified")

	// daily stats
	ErrDailyStatNotFound = errors.New("daily stat not found")
	ErrDailyStatExists   = errors.New("daily stat already exists for this account on this date")
)

// conflictErrors answer with 409; the message is safe to show to the caller.
var conflictErrors = []error{
	ErrEmailAlreadyExists,
	ErrAccountNameExists,
	ErrAccountAddressExists,
	ErrAccountConflict,
	ErrAccountVerified,
	ErrAccountNotVerified,
	ErrDailyStatExists,
}

// notFoundErrors answer with 404. A resource owned by someone else is
// reported exactly like a missing one.
var notFoundErrors = []error{
	ErrUserNotFound,
	ErrAccountNotFound,
	ErrDailyStatNotFound,
}

func matchAny(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}
