package export

import (
	"errors"
	"fmt"
)

// Class tells whether a failure comes from the environment or from the computation.
type Class int

const (
	// Internal is a computation or encoding error, retrying will not help.
	Internal Class = iota
	// Blocked is an environment error: permissions, missing browser, unreachable storage.
	Blocked
)

func (c Class) String() string {
	if c == Blocked {
		return "blocked"
	}
	return "internal"
}

var (
	// ErrBlocked matches every failure of class Blocked.
	ErrBlocked = errors.New("blocked by environment or permissions")
	// ErrInternal matches every failure of class Internal.
	ErrInternal = errors.New("internal computation error")
)

// Failure is the error of a failed export step.
type Failure struct {
	Op    string // step that failed, like "serialize" or "print"
	Class Class
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s: %v", f.Op, f.Class, f.Err)
}

// Unwrap exposes both the cause and the sentinel of the class.
func (f *Failure) Unwrap() []error {
	sentinel := ErrInternal
	if f.Class == Blocked {
		sentinel = ErrBlocked
	}
	return []error{f.Err, sentinel}
}

// Hint returns an actionable message for the user.
func (f *Failure) Hint() string {
	if f.Class == Blocked {
		return fmt.Sprintf("the %s step was blocked by the environment: check permissions, available space, browser installation or storage credentials", f.Op)
	}
	return fmt.Sprintf("the %s step failed while processing the portfolio: this is a bug or an invalid snapshot", f.Op)
}

// blocked returns err as a Blocked failure of op, keeping the class of an existing Failure.
func blocked(op string, err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Op: op, Class: Blocked, Err: err}
}

// internal returns err as an Internal failure of op, keeping the class of an existing Failure.
func internal(op string, err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Op: op, Class: Internal, Err: err}
}
