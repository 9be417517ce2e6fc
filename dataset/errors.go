package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when the payload holds fewer values than the
	// header announces.
	ErrTruncated = errors.New("dataset: truncated")

	// ErrRagged is returned by Write when rows differ in length.
	ErrRagged = errors.New("dataset: rows differ in length")

	// ErrZeroDimension is returned by Write for rows without values.
	ErrZeroDimension = errors.New("dataset: rows have no values")
)

// FormatError describes a token that could not be parsed.
type FormatError struct {
	// Token is the zero-based position of the token in the payload.
	Token int
	// Value is the offending token.
	Value string
	// Reason explains what was expected.
	Reason string

	cause error
}

func (e *FormatError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("dataset: token %d (%q): %s: %v", e.Token, e.Value, e.Reason, e.cause)
	}
	return fmt.Sprintf("dataset: token %d (%q): %s", e.Token, e.Value, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.cause }
