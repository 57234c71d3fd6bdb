package auth

import "errors"

var (
	// ErrInvalidInput indicates the credentials failed client-side validation.
	ErrInvalidInput = errors.New("invalid credentials")
	// ErrLoginFailed indicates the login endpoint rejected the attempt.
	ErrLoginFailed = errors.New("login failed")
	// ErrLoginTimeout indicates the login did not answer in time.
	ErrLoginTimeout = errors.New("login timed out")
	// ErrNoSession indicates nobody is signed in.
	ErrNoSession = errors.New("not signed in")
	// ErrSessionExpired indicates the stored session has expired and was discarded.
	ErrSessionExpired = errors.New("session expired")
)
