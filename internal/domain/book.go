package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FieldSep joins the fields of a serialized book. Neither sanitization
// policy lets it through, so it never appears inside a field.
const FieldSep = "|"

// MaxFieldBytes caps a sanitized title or author. A full line stays well
// under the read buffer of the line store, so anything Add accepts loads back.
const MaxFieldBytes = 1024

// Status is the lending state of a book.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusCheckedOut Status = "checked_out"
)

// Statuses lists the allowed values in display order.
var Statuses = []Status{StatusAvailable, StatusCheckedOut}

// ParseStatus accepts exactly one of the allowed status strings.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusAvailable, StatusCheckedOut:
		return st, nil
	default:
		return "", &OpError{
			Op:   "book.parse_status",
			Kind: KindInvalidStatus,
			Err:  fmt.Errorf("status %q (expected %s or %s): %w", s, StatusAvailable, StatusCheckedOut, ErrInvalidStatus),
		}
	}
}

// Book is a single catalog entry.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Status Status `json:"status"`
}

// Rules bundles what a new book is validated against.
type Rules struct {
	Years  YearBounds
	Policy SanitizePolicy
}

// NewBook validates and sanitizes the inputs and returns an available book.
// The year is checked first, then title and author.
func NewBook(id int, title, author string, year int, rules Rules) (Book, error) {
	if err := ValidateYear(year, rules.Years); err != nil {
		return Book{}, err
	}

	t, err := cleanField("title", title, rules.Policy)
	if err != nil {
		return Book{}, err
	}
	a, err := cleanField("author", author, rules.Policy)
	if err != nil {
		return Book{}, err
	}

	return Book{
		ID:     id,
		Title:  t,
		Author: a,
		Year:   year,
		Status: StatusAvailable,
	}, nil
}

// Line serializes the book as id|title|author|year|status.
func (b Book) Line() string {
	return strings.Join([]string{
		strconv.Itoa(b.ID),
		b.Title,
		b.Author,
		strconv.Itoa(b.Year),
		string(b.Status),
	}, FieldSep)
}

// ParseLine is the inverse of Line. Title and author are taken verbatim;
// the file is trusted to hold sanitized text.
func ParseLine(line string) (Book, error) {
	line = strings.TrimRight(line, "\r\n")

	parts := strings.Split(line, FieldSep)
	if len(parts) != 5 {
		return Book{}, malformed(fmt.Errorf("expected 5 fields, got %d", len(parts)))
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Book{}, malformed(fmt.Errorf("id %q: %v", parts[0], err))
	}
	if id <= 0 {
		return Book{}, malformed(fmt.Errorf("id %d is not positive", id))
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return Book{}, malformed(fmt.Errorf("year %q: %v", parts[3], err))
	}

	st, err := ParseStatus(parts[4])
	if err != nil {
		return Book{}, malformed(fmt.Errorf("status %q not recognized", parts[4]))
	}

	return Book{
		ID:     id,
		Title:  parts[1],
		Author: parts[2],
		Year:   year,
		Status: st,
	}, nil
}

// Matches reports whether query hits the title or author as a
// case-insensitive substring, or equals the year exactly.
func (b Book) Matches(query string) bool {
	q := Fold(query)
	return strings.Contains(Fold(b.Title), q) ||
		strings.Contains(Fold(b.Author), q) ||
		query == strconv.Itoa(b.Year)
}

func cleanField(field, raw string, p SanitizePolicy) (string, error) {
	v, err := p.Sanitize(raw)
	if err != nil {
		return "", fieldError(field, err)
	}
	if len(v) > MaxFieldBytes {
		return "", &OpError{
			Op:   "book.new",
			Kind: KindInvalidInput,
			Err:  fmt.Errorf("%s is %d bytes, limit %d: %w", field, len(v), MaxFieldBytes, ErrFieldTooLong),
		}
	}
	return v, nil
}

func malformed(err error) error {
	return &OpError{
		Op:   "book.parse_line",
		Kind: KindMalformedRecord,
		Err:  fmt.Errorf("%v: %w", err, ErrMalformedRecord),
	}
}

func fieldError(field string, err error) error {
	var oe *OpError
	if errors.As(err, &oe) {
		c := *oe
		c.Err = fmt.Errorf("%s: %w", field, oe.Err)
		return &c
	}
	return fmt.Errorf("%s: %w", field, err)
}
