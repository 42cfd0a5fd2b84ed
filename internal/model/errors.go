package model

import (
	"errors"
	"strings"
)

// ErrorKind classifies a scheduling failure.
type ErrorKind int

const (
	// ErrorInvalidInput means the snapshot was rejected before model
	// construction (no students or no staff).
	ErrorInvalidInput ErrorKind = iota
	// ErrorInfeasible means the hard constraint set has no satisfying
	// assignment.
	ErrorInfeasible
	// ErrorModelInvalid means constraint construction itself was defective.
	ErrorModelInvalid
	// ErrorTimeout means no solution was found within the solve budget.
	ErrorTimeout
	// ErrorUnknown covers any backend outcome not otherwise enumerated.
	ErrorUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorInvalidInput:
		return "invalid input"
	case ErrorInfeasible:
		return "infeasible"
	case ErrorModelInvalid:
		return "model invalid"
	case ErrorTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// SchedulingError is the typed failure of one CreateSchedule call. Causes
// carries human-readable diagnostics when the week is infeasible.
type SchedulingError struct {
	Kind    ErrorKind
	Message string
	Causes  []string
	Err     error
}

func (e *SchedulingError) Error() string {
	var builder strings.Builder
	builder.WriteString("scheduling failed (")
	builder.WriteString(e.Kind.String())
	builder.WriteString("): ")
	builder.WriteString(e.Message)
	for _, cause := range e.Causes {
		builder.WriteString("\n- ")
		builder.WriteString(cause)
	}
	return builder.String()
}

func (e *SchedulingError) Unwrap() error {
	return e.Err
}

// AsSchedulingError unwraps err into a *SchedulingError when possible.
func AsSchedulingError(err error) (*SchedulingError, bool) {
	var scheduling *SchedulingError
	ok := errors.As(err, &scheduling)
	return scheduling, ok
}
