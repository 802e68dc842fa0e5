package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/keyz/internal/ui/theme"
)

// Spinner wraps bubbles/spinner with keyz styling for loading states.
type Spinner struct {
	Model spinner.Model
}

// NewSpinner creates a new styled spinner.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	return Spinner{Model: s}
}

// Init returns the tick command that animates the spinner.
func (s Spinner) Init() tea.Cmd {
	return s.Model.Tick
}

// Update advances the spinner animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	m, cmd := s.Model.Update(msg)
	s.Model = m
	return s, cmd
}

// View renders the current spinner frame.
func (s Spinner) View() string {
	return s.Model.View()
}
