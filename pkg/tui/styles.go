package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/geniass/price-tracker/pkg/checker"
)

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6b7280")
	destructive = lipgloss.Color("#e53935")
	warning     = lipgloss.Color("#FFC107")
)

type Styles struct {
	Title          lipgloss.Style
	Tagline        lipgloss.Style
	Footer         lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Price          lipgloss.Style
	Notice         lipgloss.Style
	Help           lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Tagline: lipgloss.NewStyle().Italic(true).Foreground(muted),
		Footer:  lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Button: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent),
		ButtonDisabled: lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted),
		Price: lipgloss.NewStyle().Bold(true).MarginTop(1),
		Notice: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(warning),
		Help: lipgloss.NewStyle().Foreground(muted),
	}
}

// noticeStyle paints fetch failures red and input warnings yellow.
func (s Styles) noticeStyle(message string) lipgloss.Style {
	if message == checker.MsgFetchFailed {
		return s.Notice.BorderForeground(destructive)
	}
	return s.Notice
}
