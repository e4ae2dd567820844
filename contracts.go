// Package retry re-invokes failing operations up to a fixed number of times,
// pausing a fixed interval between attempts.
package retry

import (
	"errors"
	"fmt"
	"time"
)

type Executor interface {
	// Execute invokes the action until it succeeds or retries attempts have been
	// made, sleeping for the configured interval after every failed attempt.
	Execute(action Action, retries int, interval time.Duration, onFailure, onExhausted Callback)

	// Invoke resolves the named method on the target instance and invokes it with
	// the supplied arguments until it succeeds or retries attempts have been made.
	// On success the method's return value is propagated to the caller.
	Invoke(target any, method string, retries int, interval time.Duration, args ...any) (any, error)
}

type Action func() error

type Callback func(Outcome)

// Outcome describes a single failed attempt or, when Failure is nil, the
// exhaustion of all configured attempts. Values are constructed fresh for each
// notification and are not retained after the callback returns.
type Outcome struct {
	Attempt  int
	Interval time.Duration
	Failure  error
}

type logger interface {
	Printf(format string, args ...any)
}
type monitor interface {
	AttemptFailed(attempt int, resultError error)
	RetriesExhausted(attempts int)
}

type ExhaustedError struct {
	Attempts int
}

func (this ExhaustedError) Error() string {
	return fmt.Sprintf("maximum number of retry attempts exceeded [%d]", this.Attempts)
}
func (this ExhaustedError) Is(target error) bool { return target == ErrRetriesExhausted }

var (
	ErrNilAction        = errors.New("action must not be nil")
	ErrNilTarget        = errors.New("target instance must not be nil")
	ErrUnknownMethod    = errors.New("method could not be resolved on the target instance")
	ErrArgumentMismatch = errors.New("arguments do not match the method signature")
	ErrRetriesExhausted = errors.New("maximum number of retry attempts exceeded")
)
