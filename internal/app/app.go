package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/keyz/internal/config"
	"github.com/abhisek/keyz/internal/router"
	"github.com/abhisek/keyz/internal/screen"
	"github.com/abhisek/keyz/internal/screens/home"
	"github.com/abhisek/keyz/internal/screens/practice"
	sess "github.com/abhisek/keyz/internal/session"
	"github.com/abhisek/keyz/internal/store"
	"github.com/abhisek/keyz/internal/training"
	"github.com/abhisek/keyz/internal/typing"
	"github.com/abhisek/keyz/internal/ui/layout"
)

// Options carries the wired services the TUI needs.
type Options struct {
	Sessions  store.SessionRepo
	Recorder  *sess.Recorder
	Generator *training.Generator
	Source    training.ContentSource
	Settings  config.Settings

	// StartExercise, when set, opens straight into a practice round
	// for that exercise instead of the home menu.
	StartExercise *typing.CustomExercise
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initCmd tea.Cmd
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Recorder, opts.Sessions, opts.Generator, opts.Source, opts.Settings)
	m := AppModel{
		router: router.New(homeScreen),
	}
	if ex := opts.StartExercise; ex != nil {
		m.initCmd = m.router.Push(
			practice.New(opts.Recorder, opts.Sessions, opts.Settings.User, ex.ID, ex.Name, ex.Content))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var wpm, accuracy int
	if sp, ok := active.(screen.StatsProvider); ok {
		wpm, accuracy = sp.LiveStats()
	}
	header := layout.RenderHeader(title, wpm, accuracy, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
