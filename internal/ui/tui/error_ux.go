package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/libris/internal/domain"
)

// errBadNumber is produced by the shell itself when an id or year is not
// made of digits.
var errBadNumber = errors.New("not a number")

func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, errBadNumber) {
		return "Please enter digits only"
	}
	if errors.Is(err, domain.ErrFieldTooLong) {
		return fmt.Sprintf("Title and author are limited to %d characters", domain.MaxFieldBytes)
	}

	var ye *domain.YearError
	if errors.As(err, &ye) {
		switch ye.Reason {
		case domain.YearTooEarly:
			return fmt.Sprintf("Year must be %d or later", ye.Min)
		case domain.YearTooLate:
			return fmt.Sprintf("Year must be %d or earlier", ye.Max)
		}
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindInvalidInput:
			return "Input is empty after removing unsupported characters"
		case domain.KindInvalidYear:
			return "Invalid year"
		case domain.KindInvalidStatus:
			return "Status must be available or checked_out"
		case domain.KindNotFound:
			if oe.BookID != 0 {
				return fmt.Sprintf("No book with id %d", oe.BookID)
			}
			return "Not found"
		case domain.KindMalformedRecord:
			if oe.Path != "" && oe.Line > 0 {
				return fmt.Sprintf("Corrupt record at %s line %d", filepath.Base(oe.Path), oe.Line)
			}
			return "Corrupt record in catalog file"
		case domain.KindPersistence:
			return "Could not save the catalog (see logs)"
		case domain.KindInvalidConfig:
			return "Invalid config"
		}
	}

	if strings.TrimSpace(err.Error()) == "" {
		return "Unexpected error"
	}
	return "Unexpected error (see logs)"
}
