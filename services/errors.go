package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidOTP         = errors.New("invalid otp code")
	ErrOTPExpired         = errors.New("otp code expired")
	ErrSessionInvalid     = errors.New("session invalid")

	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCommentNotFound  = errors.New("comment not found")

	ErrForbidden     = errors.New("forbidden")
	ErrCategoryInUse = errors.New("category has posts")
)

// FieldError is a validation failure only detectable against stored data,
// such as a duplicate email. Controllers report it like a binding error.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func fieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// requiredText trims value and checks it is still at least min characters
// long. Binding rules run before trimming, so "   " would otherwise pass.
func requiredText(field, value string, min int) (string, error) {
	value = strings.TrimSpace(value)
	attr := strings.ReplaceAll(field, "_", " ")
	if value == "" {
		return "", fieldError(field, fmt.Sprintf("The %s field is required.", attr))
	}
	if utf8.RuneCountInString(value) < min {
		return "", fieldError(field, fmt.Sprintf("The %s must be at least %d characters.", attr, min))
	}
	return value, nil
}
