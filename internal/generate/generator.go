// Package generate sequences prompt building, the provider call, and response
// parsing into a single-flight question generation run.
package generate

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"reviserr/internal/credential"
	"reviserr/internal/logging"
	"reviserr/internal/mcq"
	"reviserr/internal/prompt"
	"reviserr/internal/provider"
)

// MinSourceChars is the shortest source text accepted for generation.
const MinSourceChars = 20

// DefaultCompletionPause lets progress displays settle at 100% before the
// result is handed back.
const DefaultCompletionPause = 600 * time.Millisecond

// ClientSource resolves a provider kind to a client reporting to observer.
type ClientSource interface {
	Client(kind provider.Kind, observer provider.Observer) (provider.Client, error)
}

// Request describes one generation attempt. An empty APIKey falls back to
// the credential slot.
type Request struct {
	SourceText string
	Provider   provider.Kind
	APIKey     string
}

// Config wires a Generator.
type Config struct {
	Providers       ClientSource
	Credentials     *credential.Slot
	Observer        Observer
	KeyPrompter     KeyPrompter
	CompletionPause time.Duration
}

// Generator runs at most one generation at a time.
type Generator struct {
	cfg     Config
	running atomic.Bool

	mu       sync.Mutex
	state    State
	progress float64
}

// New constructs a Generator.
func New(cfg Config) *Generator {
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	if cfg.CompletionPause < 0 {
		cfg.CompletionPause = 0
	}
	return &Generator{cfg: cfg}
}

// InProgress reports whether a run is pending. Callers use it to disable
// re-entry; Generate also rejects overlapping calls with ErrInProgress.
func (g *Generator) InProgress() bool {
	return g.running.Load()
}

// State returns the current run state.
func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Progress returns the current progress in [0,1].
func (g *Generator) Progress() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.progress
}

// Generate builds a prompt from the request, sends it to the selected
// provider, and parses the completion into a question set. Provider and
// parse errors are returned unchanged.
func (g *Generator) Generate(ctx context.Context, req Request) (mcq.QuestionSet, error) {
	if !g.running.CompareAndSwap(false, true) {
		return mcq.QuestionSet{}, ErrInProgress
	}
	defer g.running.Store(false)

	log := logging.WithContext(ctx).WithField("provider", req.Provider)
	started := time.Now()
	set, err := g.run(ctx, req)
	if err != nil {
		failedAt := g.State()
		g.fail()
		log.WithError(err).WithField("state", failedAt.String()).Warn("question generation failed")
		return mcq.QuestionSet{}, err
	}
	log.WithField("questions", set.Len()).
		WithField("elapsed", time.Since(started).Round(time.Millisecond)).
		Info("question generation complete")

	g.pause(ctx)
	return set, nil
}

func (g *Generator) run(ctx context.Context, req Request) (mcq.QuestionSet, error) {
	g.begin()
	g.transition(StateValidating)
	g.advance(ProgressValidating)

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = g.cfg.Credentials.Get()
	}
	if apiKey == "" {
		if g.cfg.KeyPrompter != nil {
			g.cfg.KeyPrompter.PromptForKey()
		}
		return mcq.QuestionSet{}, &MissingKeyError{}
	}
	if utf8.RuneCountInString(req.SourceText) < MinSourceChars {
		return mcq.QuestionSet{}, &ValidationError{
			Kind:    InsufficientText,
			Message: "Text content is insufficient to generate MCQs.",
		}
	}
	if g.cfg.Providers == nil {
		return mcq.QuestionSet{}, fmt.Errorf("no providers configured")
	}
	client, err := g.cfg.Providers.Client(req.Provider, dispatchObserver{g: g})
	if err != nil {
		return mcq.QuestionSet{}, err
	}

	g.transition(StateSending)
	logging.WithContext(ctx).WithField("source_chars", utf8.RuneCountInString(req.SourceText)).Debug("sending prompt")
	raw, err := client.Send(ctx, prompt.Build(req.SourceText), apiKey)
	if err != nil {
		return mcq.QuestionSet{}, err
	}

	g.transition(StateParsing)
	set, err := mcq.Parse(raw)
	if err != nil {
		return mcq.QuestionSet{}, err
	}
	g.advance(ProgressParsed)

	g.transition(StateComplete)
	g.advance(ProgressComplete)
	return set, nil
}

// begin resets progress for a new run without notifying observers.
func (g *Generator) begin() {
	g.mu.Lock()
	g.progress = 0
	g.mu.Unlock()
}

func (g *Generator) transition(state State) {
	g.mu.Lock()
	g.state = state
	g.mu.Unlock()
	g.cfg.Observer.OnState(state)
}

// advance raises progress; lower values are ignored so progress never moves
// backwards within a run.
func (g *Generator) advance(progress float64) {
	g.mu.Lock()
	if progress < g.progress {
		g.mu.Unlock()
		return
	}
	g.progress = progress
	g.mu.Unlock()
	g.cfg.Observer.OnProgress(progress)
}

func (g *Generator) fail() {
	g.mu.Lock()
	g.progress = 0
	g.state = StateFailed
	g.mu.Unlock()
	g.cfg.Observer.OnProgress(0)
	g.cfg.Observer.OnState(StateFailed)
}

func (g *Generator) pause(ctx context.Context) {
	if g.cfg.CompletionPause <= 0 {
		return
	}
	timer := time.NewTimer(g.cfg.CompletionPause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// dispatchObserver moves progress to the dispatch checkpoint once the
// provider has answered.
type dispatchObserver struct {
	g *Generator
}

func (o dispatchObserver) OnRequestStart(provider.Kind) {}

func (o dispatchObserver) OnResponse(provider.Kind, int) {
	o.g.advance(ProgressDispatched)
}
