package tui

import (
	"github.com/charmbracelet/lipgloss"

	"blotter/internal/highlight"
	"blotter/internal/view"
)

// Styles maps node classes to terminal styles.
type Styles struct {
	Header  lipgloss.Style
	Group   lipgloss.Style
	Sorted  lipgloss.Style
	Focused lipgloss.Style
	Editing lipgloss.Style
	FocusMe lipgloss.Style
	Input   lipgloss.Style
	New     lipgloss.Style
	Fading  lipgloss.Style
	Status  lipgloss.Style
	Help    lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Group:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Sorted:  lipgloss.NewStyle().Underline(true),
		Focused: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Editing: lipgloss.NewStyle().Background(lipgloss.Color("17")),
		FocusMe: lipgloss.NewStyle().Reverse(true),
		Input:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		New:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
		Fading:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// class returns the style for a node class, and whether there is one.
func (s Styles) class(name string) (lipgloss.Style, bool) {
	switch name {
	case view.ClassSorted:
		return s.Sorted, true
	case view.ClassFocused:
		return s.Focused, true
	case view.ClassEditing:
		return s.Editing, true
	case view.ClassFocusMe:
		return s.FocusMe, true
	case highlight.New.String():
		return s.New, true
	case highlight.Fading.String():
		return s.Fading, true
	}
	return lipgloss.Style{}, false
}
