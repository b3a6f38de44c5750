package model

import (
	"net/http"

	"github.com/festy23/ideawaves/pkg/apperror"
)

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = apperror.New(apperror.KindNotFound, "NOT_FOUND", "user not found")
	// ErrEmailTaken indicates that another account already uses the email.
	ErrEmailTaken = apperror.New(apperror.KindConflict, "USER_EXISTS", "user already exists").
			WithStatus(http.StatusBadRequest)
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	// ErrPasswordTooShort indicates a password under MinPasswordLength characters.
	ErrPasswordTooShort = apperror.Validation("password must be at least 6 characters")
	// ErrMissingFields indicates that name, email or password is empty.
	ErrMissingFields = apperror.Validation("name, email and password are required")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6
