package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/libris/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func statusBadge(t Theme, s domain.Status) string {
	if s == domain.StatusAvailable {
		return t.Available.Render("● " + string(s))
	}
	return t.Lent.Render("◐ " + string(s))
}

// renderBooks lays books out one per line. Titles and authors are clamped
// so a single long record cannot wrap the table.
func renderBooks(t Theme, books []domain.Book, width int) string {
	if len(books) == 0 {
		return t.Empty.Render("(no books found)")
	}

	textWidth := 40
	if width > 0 {
		textWidth = max(12, (width-30)/2)
	}

	var b strings.Builder
	for i, bk := range books {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%4d  %s  %s  %d  %s",
			bk.ID,
			clampString(bk.Title, textWidth),
			t.Author.Render(clampString(bk.Author, textWidth)),
			bk.Year,
			statusBadge(t, bk.Status),
		)
	}
	return b.String()
}
