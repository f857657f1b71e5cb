package auth

import "errors"

var (
	// ErrInvalidCredentials is deliberately generic: callers must not be
	// able to tell "user not found" from "wrong PIN".
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountExists is returned by AccountStore.Create when the
	// synthetic email is already taken. The repair and migration flows
	// treat it as "sync the existing account", not as a failure.
	ErrAccountExists = errors.New("auth account already exists")

	// ErrInvalidPhone covers phone values that yield no digits.
	ErrInvalidPhone = errors.New("invalid phone number")
)
