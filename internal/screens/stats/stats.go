// Package stats renders the analytics view: per-letter difficulty, a
// keyboard heatmap, and per-finger performance.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/keyz/internal/analysis"
	"github.com/abhisek/keyz/internal/layout"
	"github.com/abhisek/keyz/internal/router"
	"github.com/abhisek/keyz/internal/screen"
	"github.com/abhisek/keyz/internal/typing"
	uilayout "github.com/abhisek/keyz/internal/ui/layout"
	"github.com/abhisek/keyz/internal/ui/theme"
)

const maxLetterRows = 10

// StatsScreen displays derived analytics over the session history.
type StatsScreen struct {
	layoutID string
	letters  []typing.LetterAnalytics
	fingers  []typing.FingerAnalytics
	heatmap  map[string]analysis.HeatmapCell
	empty    bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New computes analytics for the given history and returns the screen.
func New(sessions []typing.TypingSession, layoutID string) *StatsScreen {
	s := &StatsScreen{layoutID: layoutID}

	letters := analysis.AnalyzeLetterPerformance(sessions)
	if len(letters) == 0 {
		s.empty = true
		return s
	}

	s.letters = letters
	s.fingers = analysis.AnalyzeFingerPerformance(sessions, letters, layout.For(layoutID))

	s.heatmap = make(map[string]analysis.HeatmapCell, len(letters))
	for _, cell := range analysis.GenerateLetterHeatmap(letters) {
		s.heatmap[cell.Letter] = cell
	}
	return s
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []uilayout.KeyHint {
	return []uilayout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.empty {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nNo sessions yet. Finish a practice round first.")
	}

	var b strings.Builder
	b.WriteString(s.renderHeatmap(width))
	b.WriteString("\n")
	b.WriteString(s.renderLetterTable(width))
	b.WriteString("\n")
	b.WriteString(s.renderFingerTable(width))
	return b.String()
}

// renderHeatmap paints the keyboard grid, coloring each practiced key by
// its error intensity.
func (s *StatsScreen) renderHeatmap(width int) string {
	rows := layout.Rows(s.layoutID)
	if rows == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(sectionTitle("Keyboard heatmap", width))
	for i, row := range rows {
		var line strings.Builder
		// Stagger rows like a physical board.
		line.WriteString(strings.Repeat(" ", i*2))
		for _, r := range row {
			key := string(r)
			if cell, ok := s.heatmap[key]; ok {
				line.WriteString(lipgloss.NewStyle().
					Foreground(theme.BgDark).
					Background(lipgloss.Color(cell.Color)).
					Bold(true).
					Render(" " + key + " "))
			} else {
				line.WriteString(lipgloss.NewStyle().
					Foreground(theme.TextDim).
					Render(" " + key + " "))
			}
			line.WriteString(" ")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line.String()))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *StatsScreen) renderLetterTable(width int) string {
	var b strings.Builder
	b.WriteString(sectionTitle("Hardest letters", width))

	header := fmt.Sprintf("%-8s %-10s %-10s %-12s %-10s %s",
		"letter", "attempts", "accuracy", "avg speed", "score", "priority")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(header)))
	b.WriteString("\n")

	n := min(len(s.letters), maxLetterRows)
	for _, l := range s.letters[:n] {
		line := fmt.Sprintf("%-8s %-10d %-9d%% %-10.0fms %-10d %s",
			l.Letter, l.TotalAttempts, l.Accuracy, l.AverageSpeedMs,
			l.DifficultyScore, l.Recommendation)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if l.Recommendation == typing.RecommendHigh {
			style = style.Foreground(theme.Error)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *StatsScreen) renderFingerTable(width int) string {
	var b strings.Builder
	b.WriteString(sectionTitle("Fingers", width))

	for _, f := range s.fingers {
		if len(f.Keys) == 0 {
			continue
		}
		weakest := strings.Join(f.WeakestKeys, " ")
		line := fmt.Sprintf("%-14s %-9d%% %-10.0fms weakest: %s",
			f.Name, f.AverageAccuracy, f.AverageSpeedMs, weakest)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func sectionTitle(title string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title)) + "\n"
}
