package generate

// State is a step of a generation run.
type State int

const (
	// StateIdle means no run has started or the last one finished.
	StateIdle State = iota
	// StateValidating checks the key and source text.
	StateValidating
	// StateSending waits on the provider call.
	StateSending
	// StateParsing turns the completion into questions.
	StateParsing
	// StateComplete holds a validated question set.
	StateComplete
	// StateFailed ends a run with an error.
	StateFailed
)

// String returns a lowercase state label.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSending:
		return "sending"
	case StateParsing:
		return "parsing"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Progress checkpoints reported to observers.
const (
	ProgressValidating = 0.2
	ProgressDispatched = 0.7
	ProgressParsed     = 0.85
	ProgressComplete   = 1.0
)

// Observer receives run state and progress updates.
type Observer interface {
	OnState(state State)
	OnProgress(progress float64)
}

// KeyPrompter asks the user for an API key when none is set.
type KeyPrompter interface {
	PromptForKey()
}

// KeyPrompterFunc adapts a function to KeyPrompter.
type KeyPrompterFunc func()

// PromptForKey calls f.
func (f KeyPrompterFunc) PromptForKey() {
	f()
}

type nopObserver struct{}

func (nopObserver) OnState(State) {}

func (nopObserver) OnProgress(float64) {}
