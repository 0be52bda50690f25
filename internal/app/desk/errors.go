package desk

import (
	"errors"
	"fmt"
)

// Kind classifies a desk failure.
type Kind int

const (
	// LoadFailure means the initial fetch failed. It is terminal for the screen.
	LoadFailure Kind = iota + 1
	// ValidationFailure means a required field is missing. The form stays open.
	ValidationFailure
	// MutationFailure means a create, update or delete request failed.
	MutationFailure
)

func (k Kind) String() string {
	switch k {
	case LoadFailure:
		return "LoadFailure"
	case ValidationFailure:
		return "ValidationFailure"
	case MutationFailure:
		return "MutationFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Messages shown to the operator.
const (
	MsgLoadFailed    = "Error loading members."
	MsgNamesRequired = "First and last names are required."
	MsgCreateFailed  = "Error adding member. Please try again."
	MsgUpdateFailed  = "Error updating member. Please try again."
	MsgDeleteFailed  = "Error deleting member."
)

// ErrNoDraft is returned by Submit when no form is open.
var ErrNoDraft = errors.New("no draft to submit")

// Error is a desk failure carrying the operator-facing message and,
// for load and mutation failures, the underlying transport error.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a desk *Error of kind k.
func IsKind(err error, k Kind) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Kind == k
}
