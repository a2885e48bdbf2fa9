package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateMovie  = errors.New("movie already exists")
	ErrDuplicateSeat   = errors.New("duplicate ticket for showtime seat")
	ErrSeatTaken       = errors.New("seat is already booked")
	ErrShowtimeOverlap = errors.New("showtime overlaps with an existing schedule for the same theater")
	ErrShowtimeDeleted = errors.New("showtime was deleted")
	ErrUnknownMovie    = errors.New("referenced movie does not exist")
)

// Kind classifies an outcome returned by the booking core so that callers can
// map it to a distinct response.
type Kind int

const (
	KindValidationFailed Kind = iota + 1
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidationFailed:
		return "validation_failed"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(reason string, err error) error {
	return &Error{Kind: KindNotFound, Reason: reason, Err: err}
}

func Conflict(reason string, err error) error {
	return &Error{Kind: KindConflict, Reason: reason, Err: err}
}

// FieldIssue is a single failed field check.
type FieldIssue struct {
	Field string
	Issue string
}

// ValidationError is returned when the input shape is wrong. It always comes
// before any existence or invariant check.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, v := range e.Issues {
		parts[i] = fmt.Sprintf("%s %s", v.Field, v.Issue)
	}

	return strings.Join(parts, "; ")
}

func ValidationFailed(field, issue string) error {
	return &ValidationError{Issues: []FieldIssue{{Field: field, Issue: issue}}}
}

// KindOf reports the outcome kind of err. A zero Kind means err is an opaque
// storage or infrastructure failure.
func KindOf(err error) Kind {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return KindValidationFailed
	}

	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}

	return 0
}
