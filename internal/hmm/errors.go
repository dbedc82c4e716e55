package hmm

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySequence is returned when inference is asked to run over no observations.
	ErrEmptySequence = errors.New("empty observation sequence")

	// ErrNoStates is returned by New when the definition lists no ordinary states.
	ErrNoStates = errors.New("model has no states")

	// ErrDuplicateState is returned by New when a state is listed twice.
	ErrDuplicateState = errors.New("duplicate state")

	// ErrPseudoState is returned by New when the start or end marker is
	// misused: listed as an ordinary state, or start equal to end.
	ErrPseudoState = errors.New("invalid use of start/end state")

	// ErrMissingTransition reports a transition the definition does not supply.
	ErrMissingTransition = errors.New("missing transition probability")

	// ErrMissingEmission reports an emission the definition does not supply.
	ErrMissingEmission = errors.New("missing emission probability")

	// ErrInvalidProbability reports a negative, NaN or infinite table entry.
	ErrInvalidProbability = errors.New("invalid probability")

	// ErrUnknownState reports a state that is not part of the model.
	ErrUnknownState = errors.New("unknown state")

	// ErrUnknownObservation reports an observation no state can emit.
	ErrUnknownObservation = errors.New("unknown observation")

	// ErrLengthMismatch is returned when a path and an observation sequence
	// have different lengths.
	ErrLengthMismatch = errors.New("path and observation lengths differ")
)

// LookupError describes a table entry that could not be resolved.
// It wraps one of the sentinel errors above, so callers can match it with
// errors.Is and inspect the keys with errors.As.
type LookupError struct {
	// Err is the sentinel describing the failure.
	Err error

	// From is the row key (source state), if any.
	From string

	// To is the column key (target state or observation), if any.
	To string

	// Index is the position in the input sequence, or -1 when the failure
	// was found while compiling the model.
	Index int
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	var key string
	switch {
	case e.From != "" && e.To != "":
		key = e.From + " -> " + e.To
	case e.From != "":
		key = e.From
	default:
		key = e.To
	}
	if e.Index >= 0 {
		return fmt.Sprintf("%v: %s (position %d)", e.Err, key, e.Index)
	}
	return fmt.Sprintf("%v: %s", e.Err, key)
}

// Unwrap returns the sentinel error.
func (e *LookupError) Unwrap() error {
	return e.Err
}

func tableError(err error, from, to any) *LookupError {
	le := &LookupError{Err: err, Index: -1}
	if from != nil {
		le.From = fmt.Sprint(from)
	}
	if to != nil {
		le.To = fmt.Sprint(to)
	}
	return le
}
