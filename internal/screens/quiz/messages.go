package quiz

import (
	"time"

	"github.com/abhisek/prepiz/internal/practice"
	qz "github.com/abhisek/prepiz/internal/quiz"
)

// startedMsg is sent when the question set is loaded and the session began.
type startedMsg struct {
	Session *qz.Session
	Err     error
}

// timerTickMsg is sent every second while the session is active.
type timerTickMsg time.Time

// completedMsg is sent once the outcome has been handed to the runner.
type completedMsg struct {
	Result *practice.Result
	Err    error
}
