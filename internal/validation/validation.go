// Package validation holds the field rules shared by the client and the
// mock API handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Length limits.
const (
	TitleMinLength       = 3
	TitleMaxLength       = 200
	DescriptionMinLength = 10
	DescriptionMaxLength = 2000
	PasswordMinLength    = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError describes one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of a validation. It never carries a Go error.
type Result struct {
	IsValid bool         `json:"isValid"`
	Errors  []FieldError `json:"errors"`
}

func result(errs []FieldError) Result {
	if errs == nil {
		errs = []FieldError{}
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// Merge combines results, keeping error order.
func Merge(results ...Result) Result {
	var errs []FieldError
	for _, r := range results {
		errs = append(errs, r.Errors...)
	}
	return result(errs)
}

// First returns the first error message, or "".
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Email checks a local@domain.tld shape.
func Email(email string) Result {
	var errs []FieldError
	switch {
	case email == "":
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	case !emailPattern.MatchString(email):
		errs = append(errs, FieldError{Field: "email", Message: "Invalid email format"})
	}
	return result(errs)
}

// Password checks presence and minimum length.
func Password(password string) Result {
	var errs []FieldError
	switch {
	case password == "":
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	case utf8.RuneCountInString(password) < PasswordMinLength:
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return result(errs)
}

// Title checks the trimmed length of a task title.
func Title(title string) Result {
	return lengthRule("title", "Title", title, TitleMinLength, TitleMaxLength)
}

// Description checks the trimmed length of a task description.
func Description(description string) Result {
	return lengthRule("description", "Description", description, DescriptionMinLength, DescriptionMaxLength)
}

// Task validates a title and description together.
func Task(title, description string) Result {
	return Merge(Title(title), Description(description))
}

// Credentials validates a login attempt.
func Credentials(email, password string) Result {
	return Merge(Email(email), Password(password))
}

func lengthRule(field, label, value string, min, max int) Result {
	var errs []FieldError
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	switch {
	case n == 0:
		errs = append(errs, FieldError{Field: field, Message: label + " is required"})
	case n < min:
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must be at least %d characters", label, min)})
	case n > max:
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must not exceed %d characters", label, max)})
	}
	return result(errs)
}
