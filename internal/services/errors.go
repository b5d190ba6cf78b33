// Package services defines the business logic for accounts, mood logs,
// screenings, the anonymous board, education content, and the admin dashboard.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Account-related errors.
var (
	// ErrInvalidCredentials is returned when an email/password pair does not
	// match a stored account. Unknown email and wrong password are folded
	// into the same error on purpose.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrProfileNotFound indicates that the requested account does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrWeakPassword is returned when a password is shorter than the minimum.
	ErrWeakPassword = errors.New("password too short")

	// ErrInvalidEmail is returned when an email fails basic shape validation.
	ErrInvalidEmail = errors.New("invalid email address")
)

// Mood and screening errors.
var (
	// ErrInvalidMoodLabel is returned when a mood save uses a label outside
	// the fixed set.
	ErrInvalidMoodLabel = errors.New("unknown mood label")

	// ErrMoodNotFound indicates that a mood entry to delete does not exist.
	ErrMoodNotFound = errors.New("mood entry not found")
)

// Anonymous board errors.
var (
	// ErrEmptyContent is returned when a board post has no text.
	ErrEmptyContent = errors.New("content is empty")

	// ErrInvalidBoardMood is returned when a board post uses a mood label
	// outside the fixed board set.
	ErrInvalidBoardMood = errors.New("unknown board mood label")
)

// Education content errors.
var (
	// ErrArticleNotFound indicates that the referenced article id is not in
	// the catalog.
	ErrArticleNotFound = errors.New("article not found")

	// ErrEmptyComment is returned when a comment has no text.
	ErrEmptyComment = errors.New("comment is empty")

	// ErrInvalidReadSeconds is returned when a read log reports a
	// non-positive duration.
	ErrInvalidReadSeconds = errors.New("read seconds must be positive")
)
