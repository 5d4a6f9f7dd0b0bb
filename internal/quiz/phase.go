package quiz

// Phase is the lifecycle state of a quiz session.
type Phase int

const (
	PhaseLoading   Phase = iota // Waiting for the question set
	PhaseActive                 // Accepting answers, timer running
	PhaseSubmitted              // Finished by the user
	PhaseTimedOut               // Finished by the timer
	PhaseClosed                 // Result handed off, state discarded
	PhaseNoContent              // Scope produced no questions
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseSubmitted:
		return "submitted"
	case PhaseTimedOut:
		return "timed_out"
	case PhaseClosed:
		return "closed"
	case PhaseNoContent:
		return "no_content"
	default:
		return "unknown"
	}
}

// Finished reports whether the phase ends a session with a result.
func (p Phase) Finished() bool {
	return p == PhaseSubmitted || p == PhaseTimedOut
}
