package entity

import "errors"

var (
	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingNotPending = errors.New("booking is not pending")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// General errors
	ErrValidation   = errors.New("validation failed")
	ErrAccessDenied = errors.New("access denied")
)
