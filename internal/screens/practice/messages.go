package practice

import (
	"time"

	"github.com/abhisek/keyz/internal/typing"
)

// startedMsg is sent when the recorder has opened a session.
type startedMsg struct {
	Err error
}

// timerTickMsg is sent every second to refresh the live metrics.
type timerTickMsg time.Time

// sessionSavedMsg is sent once the finished session has been persisted.
type sessionSavedMsg struct {
	Session typing.TypingSession
	Err     error
}
