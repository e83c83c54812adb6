package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// NoticeKind selects the styling of a notice
type NoticeKind int

const (
	// NoticeInfo is a neutral notice
	NoticeInfo NoticeKind = iota
	// NoticeSuccess reports a completed operation
	NoticeSuccess
	// NoticeWarning reports something the user should act on
	NoticeWarning
	// NoticeError reports a failed operation
	NoticeError
)

func (k NoticeKind) color() lipgloss.Color {
	switch k {
	case NoticeSuccess:
		return lipgloss.Color("2")
	case NoticeWarning:
		return lipgloss.Color("3")
	case NoticeError:
		return lipgloss.Color("1")
	default:
		return lipgloss.Color("6")
	}
}

// Notice renders a one-line notice in the colour of its kind
func Notice(kind NoticeKind, text string) string {
	return lipgloss.NewStyle().
		Foreground(kind.color()).
		Bold(kind == NoticeError).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(text)
}

// ColorPath colors a filesystem path
func ColorPath(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Render(text)
}
