// Package tui is the terminal triage dashboard for contact submissions.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/inquirydesk/backend/internal/model"
)

var (
	colorPrimary = lipgloss.Color("#8BC34A")
	colorBorder  = lipgloss.Color("#2a3850")
	colorMuted   = lipgloss.Color("#7a869a")
	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
	colorInfo    = lipgloss.Color("#2196F3")
)

// Styles holds the dashboard styles.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Notice  lipgloss.Style
	Active  lipgloss.Style
	Search  lipgloss.Style
	Focused lipgloss.Style
}

// DefaultStyles returns the dashboard styles.
func DefaultStyles() Styles {
	search := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Label:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Error:   lipgloss.NewStyle().Foreground(colorError),
		Notice:  lipgloss.NewStyle().Foreground(colorPrimary),
		Active:  lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Underline(true),
		Search:  search,
		Focused: search.BorderForeground(colorPrimary),
	}
}

// statusStyle colours a status badge.
func statusStyle(st model.Status) lipgloss.Style {
	switch st {
	case model.StatusNew:
		return lipgloss.NewStyle().Foreground(colorInfo)
	case model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(colorWarning)
	case model.StatusCompleted:
		return lipgloss.NewStyle().Foreground(colorPrimary)
	}
	return lipgloss.NewStyle().Foreground(colorError)
}

// statusLabel falls back to the raw value for statuses this build does not know.
func statusLabel(st model.Status) string {
	l, err := st.Label()
	if err != nil {
		return string(st)
	}
	return l
}
