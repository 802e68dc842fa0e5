// Package plan renders the generated training plan and launches its
// exercises.
package plan

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/keyz/internal/layout"
	"github.com/abhisek/keyz/internal/router"
	"github.com/abhisek/keyz/internal/screen"
	sess "github.com/abhisek/keyz/internal/session"
	"github.com/abhisek/keyz/internal/screens/practice"
	"github.com/abhisek/keyz/internal/store"
	"github.com/abhisek/keyz/internal/training"
	"github.com/abhisek/keyz/internal/typing"
	"github.com/abhisek/keyz/internal/ui/components"
	uilayout "github.com/abhisek/keyz/internal/ui/layout"
	"github.com/abhisek/keyz/internal/ui/theme"
)

type planLoadedMsg struct {
	Plan *typing.TrainingPlan
	Err  error
}

// PlanScreen shows the current training plan and lets the user pick an
// exercise to practice.
type PlanScreen struct {
	gen      *training.Generator
	repo     store.SessionRepo
	rec      *sess.Recorder
	userID   string
	layoutID string
	window   int

	plan     *typing.TrainingPlan
	selected int
	loaded   bool
	errMsg   string
	spin     components.Spinner
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

// New creates a new PlanScreen. The plan is generated from the user's
// recent session history when the screen initializes.
func New(gen *training.Generator, repo store.SessionRepo, rec *sess.Recorder, userID, layoutID string, window int) *PlanScreen {
	return &PlanScreen{
		gen:      gen,
		repo:     repo,
		rec:      rec,
		userID:   userID,
		layoutID: layoutID,
		window:   window,
		spin:     components.NewSpinner(),
	}
}

func (p *PlanScreen) Init() tea.Cmd {
	load := func() tea.Msg {
		sessions, err := p.repo.List(context.Background(), p.userID, p.window)
		if err != nil {
			return planLoadedMsg{Err: err}
		}
		plan := p.gen.Generate(p.userID, p.layoutID, sessions, layout.For(p.layoutID))
		return planLoadedMsg{Plan: plan}
	}
	return tea.Batch(load, p.spin.Init())
}

func (p *PlanScreen) Title() string {
	return "Training Plan"
}

func (p *PlanScreen) KeyHints() []uilayout.KeyHint {
	return []uilayout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		if msg.Err != nil {
			p.errMsg = msg.Err.Error()
		} else {
			p.plan = msg.Plan
		}
		p.loaded = true
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		case "down", "j":
			if p.plan != nil && p.selected < len(p.plan.Exercises)-1 {
				p.selected++
			}
			return p, nil
		case "enter":
			if p.plan == nil || len(p.plan.Exercises) == 0 {
				return p, nil
			}
			ex := p.plan.Exercises[p.selected]
			return p, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: practice.New(p.rec, p.repo, p.userID, ex.ID, ex.Name, ex.Content),
				}
			}
		}
	}

	if !p.loaded {
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PlanScreen) View(width, height int) string {
	if p.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", p.errMsg))
	}
	if !p.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n" + p.spin.View() + " Building your plan...")
	}
	if p.plan == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Not enough history yet. Complete a few sessions first.")
	}

	var b strings.Builder
	b.WriteString("\n")

	center := func(s string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s))
		b.WriteString("\n")
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	header := fmt.Sprintf("%s level  ·  %s priority  ·  ~%d min",
		p.plan.Difficulty, p.plan.Priority, p.plan.EstimatedPracticeTimeMinutes)
	center(dim.Render(header))

	if len(p.plan.FocusLetters) > 0 {
		focus := "focus: " + strings.Join(p.plan.FocusLetters, " ")
		center(lipgloss.NewStyle().Foreground(theme.Accent).Render(focus))
	}
	b.WriteString("\n")

	for i, ex := range p.plan.Exercises {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == p.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%-28s %-18s ~%d min", prefix, ex.Name, ex.Type, ex.EstimatedTimeMinutes)
		center(style.Render(line))
		if i == p.selected && ex.Description != "" {
			center(dim.Render("    " + ex.Description))
		}
	}

	if len(p.plan.ErrorPatterns) > 0 {
		b.WriteString("\n")
		center(dim.Render("Recurring mistakes"))
		for _, pat := range p.plan.ErrorPatterns {
			center(dim.Render("  " + pat.Description))
		}
	}

	return b.String()
}
