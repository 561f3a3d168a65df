package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidYear     = errors.New("invalid year")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrNotFound        = errors.New("not found")
	ErrMalformedRecord = errors.New("malformed record")
	ErrPersistence     = errors.New("persistence error")
	ErrInvalidConfig   = errors.New("invalid config")

	// ErrFieldTooLong is reported with KindInvalidInput.
	ErrFieldTooLong = fmt.Errorf("field too long: %w", ErrInvalidInput)
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidInput    ErrorKind = "invalid_input"
	KindInvalidYear     ErrorKind = "invalid_year"
	KindInvalidStatus   ErrorKind = "invalid_status"
	KindNotFound        ErrorKind = "not_found"
	KindMalformedRecord ErrorKind = "malformed_record"
	KindPersistence     ErrorKind = "persistence"
	KindInvalidConfig   ErrorKind = "invalid_config"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op     string
	Kind   ErrorKind
	Path   string // Optional: relevant file path
	Line   int    // Optional: 1-based line in Path
	BookID int    // Optional: book the operation targeted
	Err    error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.BookID != 0 {
		base += fmt.Sprintf(" (id=%d)", e.BookID)
	}
	if e.Path != "" {
		if e.Line > 0 {
			base += fmt.Sprintf(" (path=%s:%d)", e.Path, e.Line)
		} else {
			base += fmt.Sprintf(" (path=%s)", e.Path)
		}
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// YearReason tells which side of the valid range a year fell off.
type YearReason string

const (
	YearTooEarly YearReason = "too_early"
	YearTooLate  YearReason = "too_late"
)

// YearError reports a publication year outside [Min, Max].
type YearError struct {
	Year   int
	Min    int
	Max    int
	Reason YearReason
}

func (e *YearError) Error() string {
	switch e.Reason {
	case YearTooEarly:
		return fmt.Sprintf("year %d is before %d, the earliest printed book", e.Year, e.Min)
	case YearTooLate:
		return fmt.Sprintf("year %d is after %d", e.Year, e.Max)
	default:
		return fmt.Sprintf("year %d out of range [%d, %d]", e.Year, e.Min, e.Max)
	}
}

func (e *YearError) Unwrap() error { return ErrInvalidYear }

// NotFound builds the error returned when no book carries id.
func NotFound(op string, id int) error {
	return &OpError{
		Op:     op,
		Kind:   KindNotFound,
		BookID: id,
		Err:    fmt.Errorf("book %d: %w", id, ErrNotFound),
	}
}
