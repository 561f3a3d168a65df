package domain

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// SanitizePolicy selects how free text is cleaned before storage.
type SanitizePolicy string

const (
	// PolicyAllowList keeps only ASCII letters, digits, space and .,!?-
	PolicyAllowList SanitizePolicy = "allowlist"
	// PolicyBlockList removes <>{};"' plus the field separator and control characters.
	PolicyBlockList SanitizePolicy = "blocklist"
)

const blocked = `<>{};"'` + FieldSep

// ParseSanitizePolicy maps a config value to a policy. Empty means allowlist.
func ParseSanitizePolicy(s string) (SanitizePolicy, error) {
	switch p := SanitizePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyAllowList, nil
	case PolicyAllowList, PolicyBlockList:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported sanitize policy %q (expected allowlist|blocklist): %w", s, ErrInvalidConfig)
	}
}

// Sanitize cleans text with the allow-list policy.
func Sanitize(text string) (string, error) {
	return PolicyAllowList.Sanitize(text)
}

// Sanitize trims text, drops disallowed characters and trims again, so the
// result is stable under repeated application. An empty result is an error.
func (p SanitizePolicy) Sanitize(text string) (string, error) {
	keep := allowed
	if p == PolicyBlockList {
		keep = notBlocked
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.TrimSpace(text) {
		if keep(r) {
			b.WriteRune(r)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", &OpError{
			Op:   "book.sanitize",
			Kind: KindInvalidInput,
			Err:  fmt.Errorf("%q has no usable characters: %w", text, ErrInvalidInput),
		}
	}
	return out, nil
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case ' ', '.', ',', '!', '?', '-':
		return true
	}
	return false
}

func notBlocked(r rune) bool {
	if unicode.IsControl(r) {
		return false
	}
	return !strings.ContainsRune(blocked, r)
}

// Fold returns a case-folded form of s for case-insensitive comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}
