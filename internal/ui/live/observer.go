package live

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"reviserr/internal/generate"
)

// Controller runs the live UI and forwards generation updates to it. It
// implements generate.Observer and generate.KeyPrompter.
type Controller struct {
	events chan Event
}

// NewController returns a controller with an empty event queue.
func NewController() *Controller {
	return &Controller{events: make(chan Event, 64)}
}

// Run shows the UI on stdout until the user quits.
func (c *Controller) Run(ctx context.Context, stdin io.Reader, stdout io.Writer, deps Deps, opts Options) error {
	if stdout == nil {
		stdout = os.Stdout
	}
	model := NewModel(ctx, c.events, deps, opts)
	programOpts := []tea.ProgramOption{tea.WithOutput(stdout), tea.WithAltScreen(), tea.WithContext(ctx)}
	if stdin != nil {
		programOpts = append(programOpts, tea.WithInput(stdin))
	}
	_, err := tea.NewProgram(model, programOpts...).Run()
	return err
}

// OnState forwards generator state changes to the UI.
func (c *Controller) OnState(state generate.State) {
	c.send(Event{Kind: EventGenerationState, State: state})
}

// OnProgress forwards generation progress to the UI.
func (c *Controller) OnProgress(progress float64) {
	c.send(Event{Kind: EventProgress, Progress: progress})
}

// PromptForKey asks the UI to open the key form.
func (c *Controller) PromptForKey() {
	c.send(Event{Kind: EventKeyRequested})
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
