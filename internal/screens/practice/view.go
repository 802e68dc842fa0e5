package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/keyz/internal/ui/components"
	"github.com/abhisek/keyz/internal/ui/theme"
)

func (p *PracticeScreen) View(width, height int) string {
	if p.errMsg != "" {
		return renderError(width, p.errMsg)
	}
	if p.quitConfirm {
		return renderQuitConfirm(width)
	}
	if p.finishing {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Saving session...")
	}
	return p.renderExercise(width)
}

func (p *PracticeScreen) renderExercise(width int) string {
	var b strings.Builder

	// Exercise info line.
	elapsed := int(p.snap.ElapsedSeconds)
	timerStr := fmt.Sprintf("%d:%02d", elapsed/60, elapsed%60)

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", p.name))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d wpm  %d%% acc  %d err  %s",
			p.snap.WPM, p.snap.Accuracy, p.snap.IncorrectChars, timerStr))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(p.renderText(width))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", p.Progress(), true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))

	return b.String()
}

// renderText paints the exercise text: correct characters green,
// mistakes red (showing what the exercise expected), the cursor
// highlighted, and the untyped remainder dimmed.
func (p *PracticeScreen) renderText(width int) string {
	lineWidth := min(width-8, 72)
	if lineWidth < 10 {
		lineWidth = 10
	}

	var lines []string
	var line strings.Builder
	lineLen := 0

	for i, r := range p.text {
		var s string
		switch {
		case i == p.pos:
			s = theme.Cursor.Render(string(r))
		case p.states[i] == stateCorrect:
			s = theme.Correct.Render(string(r))
		case p.states[i] == stateIncorrect:
			s = theme.Incorrect.Render(string(r))
		default:
			s = theme.Pending.Render(string(r))
		}
		line.WriteString(s)
		lineLen++

		// Wrap at spaces once the line is full.
		if lineLen >= lineWidth && r == ' ' {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
	}
	if lineLen > 0 {
		lines = append(lines, line.String())
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l))
		b.WriteString("\n")
	}
	return b.String()
}

func renderQuitConfirm(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("\n\nEnd this session early?\n\nProgress so far will be saved.\n\n[Y]es    [N]o")
}

func renderError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\nSomething went wrong:\n\n" + msg + "\n\nPress any key to go back.")
}
