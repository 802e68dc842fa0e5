// Package home is the main menu of the application.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/keyz/internal/config"
	"github.com/abhisek/keyz/internal/router"
	"github.com/abhisek/keyz/internal/screen"
	sess "github.com/abhisek/keyz/internal/session"
	"github.com/abhisek/keyz/internal/screens/history"
	"github.com/abhisek/keyz/internal/screens/plan"
	"github.com/abhisek/keyz/internal/screens/practice"
	"github.com/abhisek/keyz/internal/screens/stats"
	"github.com/abhisek/keyz/internal/store"
	"github.com/abhisek/keyz/internal/training"
	"github.com/abhisek/keyz/internal/typing"
	"github.com/abhisek/keyz/internal/ui/components"
	"github.com/abhisek/keyz/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu         components.Menu
	sessionCount int
	avgWPM       int
	bestWPM      int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(rec *sess.Recorder, repo store.SessionRepo, gen *training.Generator, source training.ContentSource, settings config.Settings) *HomeScreen {
	// Headline numbers come from the recent session window.
	var recent []typing.TypingSession
	if repo != nil {
		recent, _ = repo.List(context.Background(), settings.User, settings.HistoryWindow)
	}

	var sessionCount, avgWPM, bestWPM int
	sessionCount = len(recent)
	for _, s := range recent {
		avgWPM += s.WPM
		if s.WPM > bestWPM {
			bestWPM = s.WPM
		}
	}
	if sessionCount > 0 {
		avgWPM /= sessionCount
	}

	items := []components.MenuItem{
		{Label: "Practice", Action: func() tea.Cmd {
			return func() tea.Msg {
				text := practiceText(source, settings.SentenceCount)
				return router.PushScreenMsg{
					Screen: practice.New(rec, repo, settings.User, "free-practice", "Practice", text),
				}
			}
		}},
		{Label: "Training Plan", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: plan.New(gen, repo, rec, settings.User, settings.Layout, settings.HistoryWindow),
				}
			}
		}},
		{Label: "Statistics", Action: func() tea.Cmd {
			return func() tea.Msg {
				sessions, err := repo.List(context.Background(), settings.User, settings.HistoryWindow)
				if err != nil {
					sessions = nil
				}
				return router.PushScreenMsg{
					Screen: stats.New(sessions, settings.Layout),
				}
			}
		}},
		{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(repo, settings.User)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:         components.NewMenu(items),
		sessionCount: sessionCount,
		avgWPM:       avgWPM,
		bestWPM:      bestWPM,
	}
}

// practiceText builds a free-practice paragraph from the content source.
func practiceText(source training.ContentSource, sentenceCount int) string {
	if sentenceCount < 1 {
		sentenceCount = 3
	}
	templates := source.SentenceTemplates()
	if len(templates) == 0 {
		return strings.Join(source.WordsContaining(nil), " ")
	}
	if sentenceCount > len(templates) {
		sentenceCount = len(templates)
	}
	return strings.Join(templates[:sentenceCount], " ")
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("k e y z")
	subtitle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("typing performance trainer")
	sections = append(sections, title, subtitle, "")

	if h.sessionCount > 0 {
		statsLine := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("%d sessions  ·  avg %d wpm  ·  best %d wpm",
				h.sessionCount, h.avgWPM, h.bestWPM))
		sections = append(sections, statsLine, "")
	}

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
