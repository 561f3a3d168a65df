package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = Rules{
	Years:  YearBounds{Min: EarliestYear, Max: 2024},
	Policy: PolicyAllowList,
}

func TestValidateYear(t *testing.T) {
	b := YearBounds{Min: EarliestYear, Max: 2024}

	for _, y := range []int{868, 1000, 2000, 2024} {
		assert.NoError(t, ValidateYear(y, b), "year %d", y)
	}

	tests := []struct {
		year   int
		reason YearReason
	}{
		{867, YearTooEarly},
		{0, YearTooEarly},
		{-5, YearTooEarly},
		{2025, YearTooLate},
		{9999, YearTooLate},
	}
	for _, tt := range tests {
		err := ValidateYear(tt.year, b)
		require.Error(t, err, "year %d", tt.year)
		assert.True(t, IsKind(err, KindInvalidYear))

		var ye *YearError
		require.True(t, errors.As(err, &ye))
		assert.Equal(t, tt.reason, ye.Reason)
	}
}

func TestBoundsFor(t *testing.T) {
	now := time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, YearBounds{Min: 868, Max: 2031}, BoundsFor(0, now))
	assert.Equal(t, YearBounds{Min: 868, Max: 2024}, BoundsFor(2024, now))
}

func TestBookLine(t *testing.T) {
	b := Book{ID: 1, Title: "Test Book", Author: "Author", Year: 2000, Status: StatusAvailable}
	assert.Equal(t, "1|Test Book|Author|2000|available", b.Line())
}

func TestParseLine(t *testing.T) {
	b, err := ParseLine("1|Test Book|Author|2000|checked_out\n")
	require.NoError(t, err)

	assert.Equal(t, Book{ID: 1, Title: "Test Book", Author: "Author", Year: 2000, Status: StatusCheckedOut}, b)
}

func TestParseLineRoundTrip(t *testing.T) {
	books := []Book{
		{ID: 1, Title: "Test Book", Author: "Author", Year: 2000, Status: StatusAvailable},
		{ID: 42, Title: "Who? Me!", Author: "A. N. Other-Name", Year: 868, Status: StatusCheckedOut},
	}
	for _, want := range books {
		got, err := ParseLine(want.Line())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseLineMalformed(t *testing.T) {
	cases := []string{
		"Invalid|Data",
		"1|a|b|2000",
		"1|a|b|2000|available|extra",
		"x|a|b|2000|available",
		"1|a|b|year|available",
		"0|a|b|2000|available",
		"-3|a|b|2000|available",
		"1|a|b|2000|lost",
		"",
	}
	for _, line := range cases {
		_, err := ParseLine(line)
		require.Error(t, err, "line %q", line)
		assert.True(t, IsKind(err, KindMalformedRecord), "line %q: %v", line, err)
		assert.ErrorIs(t, err, ErrMalformedRecord)
	}
}

func TestNewBook(t *testing.T) {
	b, err := NewBook(3, "  Dune<script> ", "Frank Herbert;", 1965, testRules)
	require.NoError(t, err)

	assert.Equal(t, 3, b.ID)
	assert.Equal(t, "Dunescript", b.Title)
	assert.Equal(t, "Frank Herbert", b.Author)
	assert.Equal(t, StatusAvailable, b.Status)
}

func TestNewBookChecksYearBeforeText(t *testing.T) {
	_, err := NewBook(1, "@@@", "Author", 3000, testRules)
	assert.True(t, IsKind(err, KindInvalidYear))

	_, err = NewBook(1, "@@@", "Author", 2000, testRules)
	assert.True(t, IsKind(err, KindInvalidInput))
	assert.Contains(t, err.Error(), "title")

	_, err = NewBook(1, "Title", "   ", 2000, testRules)
	assert.True(t, IsKind(err, KindInvalidInput))
	assert.Contains(t, err.Error(), "author")
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("checked_out")
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedOut, st)

	for _, in := range []string{"lost", " available ", "Available", ""} {
		_, err = ParseStatus(in)
		assert.True(t, IsKind(err, KindInvalidStatus), "status %q", in)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}
}

func TestNewBookRejectsOversizedFields(t *testing.T) {
	long := strings.Repeat("a", MaxFieldBytes+1)

	_, err := NewBook(1, long, "Author", 2000, testRules)
	assert.True(t, IsKind(err, KindInvalidInput))
	assert.ErrorIs(t, err, ErrFieldTooLong)
	assert.Contains(t, err.Error(), "title")

	_, err = NewBook(1, "Title", long, 2000, testRules)
	assert.ErrorIs(t, err, ErrFieldTooLong)
	assert.Contains(t, err.Error(), "author")

	b, err := NewBook(1, strings.Repeat("a", MaxFieldBytes), "Author", 2000, testRules)
	require.NoError(t, err)
	assert.Len(t, b.Title, MaxFieldBytes)
}

func TestBookMatches(t *testing.T) {
	b := Book{ID: 1, Title: "Test Book", Author: "Jane Austen", Year: 1813, Status: StatusAvailable}

	assert.True(t, b.Matches("test"))
	assert.True(t, b.Matches("BOOK"))
	assert.True(t, b.Matches("austen"))
	assert.True(t, b.Matches("1813"))
	assert.False(t, b.Matches("181"))
	assert.False(t, b.Matches("Tolkien"))
}
