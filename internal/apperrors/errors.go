package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrIndexOutOfRange is returned when a positional operation targets a row that does not exist.
// Positions shift after every structural change, so callers should re-fetch and retry.
var ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrNotFound)

// ErrKeyNotFound is returned when a keyed record (e.g. an other-POS terminal) is absent.
var ErrKeyNotFound = fmt.Errorf("%w: key not found", ErrNotFound)

// ErrSessionNotFound is returned for unknown or expired working sessions.
var ErrSessionNotFound = fmt.Errorf("%w: session not found", ErrNotFound)

// ErrUnknownCategory indicates a record category name that the store does not hold.
var ErrUnknownCategory = fmt.Errorf("%w: unknown record category", ErrValidation)

// ErrMalformedImportData indicates an uploaded spreadsheet or CSV could not be parsed.
var ErrMalformedImportData = errors.New("malformed import data")
