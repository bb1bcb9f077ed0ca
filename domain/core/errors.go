package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrMalformedBallot means a profile references unknown candidates or a
	// ranking lists a candidate twice. Profiles carrying such ballots must
	// never be tallied, so construction surfaces this immediately.
	ErrMalformedBallot = errors.New("malformed ballot")

	// ErrInvalidConfiguration covers generator and harness setup mistakes.
	// Surfaced before any trial runs.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrIncompatibleBallotFormat means a method was handed a profile whose
	// ballots do not carry the data it needs. Methods refuse rather than
	// coerce; the harness records it per (method, trial) and continues.
	ErrIncompatibleBallotFormat = errors.New("incompatible ballot format")
)

// Error constructors with context
func NewMalformedBallotError(ballotIndex int, reason string) error {
	return fmt.Errorf("%w: ballot %d: %s", ErrMalformedBallot, ballotIndex, reason)
}

func NewInvalidConfigurationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfiguration, field, reason)
}

func NewIncompatibleBallotFormatError(method string, want, got string) error {
	return fmt.Errorf("%w: method %s requires %s ballots, profile has %s", ErrIncompatibleBallotFormat, method, want, got)
}

// Error checking helpers
func IsMalformedBallot(err error) bool {
	return errors.Is(err, ErrMalformedBallot)
}

func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

func IsIncompatibleBallotFormat(err error) bool {
	return errors.Is(err, ErrIncompatibleBallotFormat)
}
