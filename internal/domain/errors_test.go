package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "linestore.save",
		Kind: KindPersistence,
		Path: "library.txt",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindPersistence {
		t.Fatalf("expected kind %s", KindPersistence)
	}
}

func TestOpErrorMessageIncludesContext(t *testing.T) {
	err := &OpError{
		Op:   "linestore.load",
		Kind: KindMalformedRecord,
		Path: "library.txt",
		Line: 3,
		Err:  ErrMalformedRecord,
	}

	msg := err.Error()
	for _, want := range []string{"linestore.load", "malformed_record", "library.txt:3"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestIsKindForNotFound(t *testing.T) {
	err := NotFound("catalog.remove", 7)

	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected IsKind to match not found")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is(ErrNotFound)")
	}

	var oe *OpError
	if !errors.As(err, &oe) || oe.BookID != 7 {
		t.Fatalf("expected BookID=7, got %+v", oe)
	}
}

func TestYearErrorUnwrapsToSentinel(t *testing.T) {
	err := ValidateYear(100, YearBounds{Min: EarliestYear, Max: 2024})
	if !errors.Is(err, ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}

	var ye *YearError
	if !errors.As(err, &ye) {
		t.Fatalf("expected *YearError in chain")
	}
	if ye.Reason != YearTooEarly {
		t.Fatalf("expected too_early, got %s", ye.Reason)
	}
}
