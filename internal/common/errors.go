// Package common defines shared constants and sentinel errors used across the
// SafeSpace layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrAlreadyRecordedToday = errors.New("mood already recorded today")
	ErrNoFeelingProvided    = errors.New("no feeling provided")

	// Storage lifecycle errors. ErrStorageUnavailable is only fatal at startup.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMalformedStoredAnswers is raised when a serialized questionnaire column
	// cannot be decoded. Services log it and degrade to "no answers".
	ErrMalformedStoredAnswers = errors.New("malformed stored answers")
)
