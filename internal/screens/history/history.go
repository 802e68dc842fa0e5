// Package history lists past typing sessions with their headline metrics.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/keyz/internal/metrics"
	"github.com/abhisek/keyz/internal/router"
	"github.com/abhisek/keyz/internal/screen"
	"github.com/abhisek/keyz/internal/store"
	"github.com/abhisek/keyz/internal/typing"
	"github.com/abhisek/keyz/internal/ui/components"
	"github.com/abhisek/keyz/internal/ui/layout"
	"github.com/abhisek/keyz/internal/ui/theme"
)

const historyWindow = 50

type historyLoadedMsg struct {
	Sessions []typing.TypingSession
	Err      error
}

// HistoryScreen displays past sessions, newest first.
type HistoryScreen struct {
	repo     store.SessionRepo
	userID   string
	sessions []typing.TypingSession
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
	spin     components.Spinner
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SessionRepo, userID string) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		userID:   userID,
		expanded: make(map[int]bool),
		spin:     components.NewSpinner(),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	load := func() tea.Msg {
		sessions, err := s.repo.List(context.Background(), s.userID, historyWindow)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		// Newest first for display.
		for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
			sessions[i], sessions[j] = sessions[j], sessions[i]
		}
		return historyLoadedMsg{Sessions: sessions}
	}
	return tea.Batch(load, s.spin.Init())
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}

	if !s.loaded {
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n" + s.spin.View() + " Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.StartTime.Format("Jan 02, 2006 15:04")
		mins := int(sess.DurationSeconds) / 60
		secs := int(sess.DurationSeconds) % 60
		durationStr := fmt.Sprintf("%d:%02d", mins, secs)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d wpm  %d%% accuracy",
			prefix, dateStr, durationStr, sess.WPM, sess.Accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim)
			detail := fmt.Sprintf("    %d chars  %d errors  consistency %d  error rate %d%%",
				sess.TotalChars, sess.IncorrectChars, sess.Consistency, sess.ErrorRate)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(detail)))
			b.WriteString("\n")
			for _, pair := range topMistakes(sess, 3) {
				line := fmt.Sprintf("    typed %q instead of %q  %d times",
					pair.Actual, pair.Expected, pair.Count)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(line)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func topMistakes(sess typing.TypingSession, limit int) []metrics.MistakePair {
	pairs := metrics.MistakeFrequency(sess.Mistakes)
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}
