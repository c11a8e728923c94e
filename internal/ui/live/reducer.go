package live

import "reviserr/internal/generate"

// Reduce applies a generation event to UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventGenerationState:
		state.GenerationState = event.State
		if event.State == generate.StateFailed {
			state.Progress = 0
		}
	case EventProgress:
		state.Progress = clampProgress(event.Progress)
	case EventKeyRequested:
		state.KeyFormOpen = true
	}
	return state
}

func clampProgress(value float64) float64 {
	switch {
	case value < 0:
		return 0
	case value > 1:
		return 1
	default:
		return value
	}
}
