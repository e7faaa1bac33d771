package users

import "errors"

var (
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken indicates a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers unknown email and wrong password alike so
	// login failures stay indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
