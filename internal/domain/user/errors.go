package user

import "errors"

var (
	// ErrUserNotFound indicates the directory entry doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail indicates another entry already uses the email.
	ErrDuplicateEmail = errors.New("email already in directory")
	// ErrInvalidInput indicates invalid input for directory operations.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrPersist indicates the directory could not be written.
	ErrPersist = errors.New("failed to persist users")
)
