package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the shell palette. Status colours follow the badge a book gets
// in listings: green on the shelf, amber when lent out.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Shelf    lipgloss.Style
	Label    lipgloss.Style

	Author    lipgloss.Style
	Available lipgloss.Style
	Lent      lipgloss.Style
	Empty     lipgloss.Style

	Notice  lipgloss.Style
	Problem lipgloss.Style
}

func DefaultTheme() Theme {
	paper := lipgloss.AdaptiveColor{Light: "94", Dark: "180"}
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(paper),
		Subtitle: lipgloss.NewStyle().Italic(true).Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Shelf: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(paper),
		Label: lipgloss.NewStyle().Bold(true).Underline(true),

		Author:    lipgloss.NewStyle().Italic(true),
		Available: lipgloss.NewStyle().Foreground(lipgloss.Color("71")),
		Lent:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Empty:     lipgloss.NewStyle().Faint(true).Italic(true),

		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("71")),
		Problem: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("167")),
	}
}
