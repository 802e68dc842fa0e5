// Package practice implements the typing exercise screen. Every key
// press is stamped into the session recorder; the finished session is
// persisted before the summary appears.
package practice

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/keyz/internal/router"
	"github.com/abhisek/keyz/internal/screen"
	sess "github.com/abhisek/keyz/internal/session"
	"github.com/abhisek/keyz/internal/screens/summary"
	"github.com/abhisek/keyz/internal/store"
	"github.com/abhisek/keyz/internal/ui/layout"
)

// charState tracks how each exercise character has been typed so far.
type charState int

const (
	statePending charState = iota
	stateCorrect
	stateIncorrect
)

// PracticeScreen implements screen.Screen for a typing exercise.
type PracticeScreen struct {
	rec      *sess.Recorder
	repo     store.SessionRepo
	userID   string
	lessonID string
	name     string

	text   []rune
	typed  []rune
	states []charState
	pos    int

	snap        sess.Snapshot
	quitConfirm bool
	finishing   bool
	errMsg      string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatsProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen for the given exercise text.
func New(rec *sess.Recorder, repo store.SessionRepo, userID, lessonID, name, text string) *PracticeScreen {
	runes := []rune(text)
	return &PracticeScreen{
		rec:      rec,
		repo:     repo,
		userID:   userID,
		lessonID: lessonID,
		name:     name,
		text:     runes,
		typed:    make([]rune, len(runes)),
		states:   make([]charState, len(runes)),
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startedMsg{Err: p.rec.Start(p.userID, p.lessonID)} },
		tickCmd(),
	)
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	if p.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "Backspace", Description: "Correct"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			p.errMsg = msg.Err.Error()
		}
		return p, nil

	case timerTickMsg:
		if p.finishing || p.errMsg != "" {
			return p, nil
		}
		if snap, err := p.rec.Live(); err == nil {
			p.snap = snap
		}
		return p, tickCmd()

	case sessionSavedMsg:
		return p.handleSaved(msg)

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if p.errMsg != "" {
		p.rec.Abort()
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if p.finishing {
		return p, nil
	}

	key := msg.String()

	if p.quitConfirm {
		switch key {
		case "y", "Y":
			p.quitConfirm = false
			return p, p.finish()
		case "n", "N", "esc":
			p.quitConfirm = false
		}
		return p, nil
	}

	switch key {
	case "esc":
		p.quitConfirm = true
		return p, nil
	case "backspace":
		if p.pos > 0 {
			p.pos--
			p.typed[p.pos] = 0
			p.states[p.pos] = statePending
		}
		return p, nil
	}

	// Printable input, including space.
	if msg.Text == "" {
		return p, nil
	}
	return p, p.typeChar([]rune(msg.Text)[0])
}

// typeChar records one character against the exercise text and advances
// the cursor. Completing the text ends the session.
func (p *PracticeScreen) typeChar(ch rune) tea.Cmd {
	if p.pos >= len(p.text) {
		return nil
	}

	expected := string(p.text[p.pos])
	if err := p.rec.RecordKeystroke(string(ch), expected, p.pos); err != nil {
		p.errMsg = err.Error()
		return nil
	}

	p.typed[p.pos] = ch
	if string(ch) == expected {
		p.states[p.pos] = stateCorrect
	} else {
		p.states[p.pos] = stateIncorrect
	}
	p.pos++

	if snap, err := p.rec.Live(); err == nil {
		p.snap = snap
	}

	if p.pos == len(p.text) {
		return p.finish()
	}
	return nil
}

// finish ends the recorder session and persists it.
func (p *PracticeScreen) finish() tea.Cmd {
	p.finishing = true
	return func() tea.Msg {
		done, err := p.rec.End()
		if err != nil {
			return sessionSavedMsg{Err: err}
		}
		if err := p.repo.Save(context.Background(), done); err != nil {
			return sessionSavedMsg{Err: err}
		}
		return sessionSavedMsg{Session: done}
	}
}

func (p *PracticeScreen) handleSaved(msg sessionSavedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		p.errMsg = msg.Err.Error()
		p.finishing = false
		return p, nil
	}
	return p, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(msg.Session)}
	}
}

// LiveStats feeds the header's WPM and accuracy readouts.
func (p *PracticeScreen) LiveStats() (int, int) {
	return p.snap.WPM, p.snap.Accuracy
}

// Progress reports typed position over total length for the view.
func (p *PracticeScreen) Progress() float64 {
	if len(p.text) == 0 {
		return 0
	}
	return float64(p.pos) / float64(len(p.text))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
