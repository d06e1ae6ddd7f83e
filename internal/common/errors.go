package common

import "errors"

var (
	// Persistence errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorInternal     = errors.New("internal error")

	// Session errors.
	ErrNoCredential    = errors.New("no credential")
	ErrNoRefreshToken  = errors.New("no refresh token")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidPassword = errors.New("invalid passphrase")
)
