package live

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reviserr/internal/credential"
	"reviserr/internal/extract"
	"reviserr/internal/generate"
	"reviserr/internal/logging"
	"reviserr/internal/mcq"
	"reviserr/internal/provider"
	"reviserr/internal/quiz"
)

// OfflineMessage is the info banner shown when the provider host is unreachable.
const OfflineMessage = "You are currently offline. Some features may be unavailable."

// Deps are the collaborators the UI drives.
type Deps struct {
	Generator   *generate.Generator
	Credentials *credential.Slot
	Extract     func(ctx context.Context, path string) (string, error)
	Providers   []provider.Kind
	Shuffler    quiz.Shuffler
}

// Options configures the live UI model.
type Options struct {
	NoColor      bool
	AdvanceDelay time.Duration
	DocumentPath string
	Provider     provider.Kind
	Offline      bool
}

// Model renders the interactive quiz flow using Bubble Tea.
type Model struct {
	ctx    context.Context
	deps   Deps
	opts   Options
	events <-chan Event

	state   State
	keyForm keyForm
	path    textinput.Model
	bar     progress.Model
	review  table.Model

	// source is the extracted document text, held only until reset.
	source  string
	session *quiz.Session
	// seq invalidates pending advance ticks after a restart or reset.
	seq int
}

// NewModel constructs a live UI model fed by a generation event stream.
func NewModel(ctx context.Context, events <-chan Event, deps Deps, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if deps.Credentials == nil {
		deps.Credentials = credential.NewSlot()
	}
	if len(deps.Providers) == 0 {
		deps.Providers = []provider.Kind{provider.OpenAI, provider.Cohere}
	}
	if opts.Provider == "" {
		opts.Provider = deps.Providers[0]
	}

	path := textinput.New()
	path.Placeholder = "path/to/notes.pdf"
	path.SetValue(opts.DocumentPath)

	m := Model{
		ctx:     ctx,
		deps:    deps,
		opts:    opts,
		events:  events,
		keyForm: newKeyForm(deps.Providers),
		path:    path,
		bar:     newProgressBar(opts.NoColor),
		review:  newReviewTable(opts.NoColor),
	}
	m.state = State{
		Stage:    StageLanding,
		Provider: opts.Provider,
		KeySet:   deps.Credentials.IsSet(),
	}
	if opts.Offline {
		m.state.Info = OfflineMessage
	}
	return m
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Init waits for the first generation event.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// EventMsg wraps a generation event for Bubble Tea.
type EventMsg struct {
	Event Event
}

type extractedMsg struct {
	text string
	err  error
}

type generatedMsg struct {
	set mcq.QuestionSet
	err error
}

type advanceMsg struct {
	seq int
}

// waitForEvent blocks until a generation event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return nil
		}
		return EventMsg{Event: event}
	}
}

// Update consumes key presses, background results, and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(typed.Width-8, 10), 60)
		m.review.SetWidth(typed.Width)
		m.review.SetColumns(reviewColumns(typed.Width))
		return m, nil
	case EventMsg:
		return m.applyEvent(typed.Event)
	case extractedMsg:
		return m.onExtracted(typed)
	case generatedMsg:
		return m.onGenerated(typed)
	case advanceMsg:
		return m.onAdvance(typed)
	case tea.KeyMsg:
		return m.onKey(typed)
	}
	return m, nil
}

func (m Model) applyEvent(event Event) (tea.Model, tea.Cmd) {
	wasOpen := m.state.KeyFormOpen
	m.state = Reduce(m.state, event)
	cmds := []tea.Cmd{waitForEvent(m.events)}
	if m.state.KeyFormOpen && !wasOpen {
		var cmd tea.Cmd
		m.keyForm, cmd = m.keyForm.open(m.state.Provider)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.deps.Credentials.Clear()
		return m, tea.Quit
	}
	if m.state.KeyFormOpen {
		return m.onKeyFormKey(msg)
	}
	switch m.state.Stage {
	case StageLanding:
		return m.onLandingKey(msg)
	case StageExtracting:
		return m.onExtractingKey(msg)
	case StageMCQ:
		return m.onMCQKey(msg)
	case StageQuiz:
		return m.onQuizKey(msg)
	case StageDone:
		return m.onDoneKey(msg)
	}
	return m, nil
}

func (m Model) onKeyFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.keyForm = m.keyForm.close()
		m.state.KeyFormOpen = false
		return m, nil
	case "tab", "down":
		m.keyForm = m.keyForm.cycle(1)
		return m, nil
	case "shift+tab", "up":
		m.keyForm = m.keyForm.cycle(-1)
		return m, nil
	case "enter":
		if !m.deps.Credentials.Set(m.keyForm.value()) {
			return m, nil
		}
		m.state.Provider = m.keyForm.provider()
		m.state.KeySet = true
		m.state.KeyFormOpen = false
		m.keyForm = m.keyForm.close()
		if m.state.Error == (&generate.MissingKeyError{}).Error() {
			m.state.Error = ""
		}
		logging.WithContext(m.ctx).WithField("provider", m.state.Provider).Info("api key set")
		return m, nil
	}
	var cmd tea.Cmd
	m.keyForm, cmd = m.keyForm.update(msg)
	return m, cmd
}

func (m Model) openKeyForm() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.keyForm, cmd = m.keyForm.open(m.state.Provider)
	m.state.KeyFormOpen = true
	return m, cmd
}

func (m Model) onLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.deps.Credentials.Clear()
		return m, tea.Quit
	case "k":
		return m.openKeyForm()
	case "enter":
		m.state.Stage = StageExtracting
		m.state.Error = ""
		return m, m.path.Focus()
	}
	return m, nil
}

func (m Model) onExtractingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Extracting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		return m.resetAll()
	case "enter":
		path := strings.TrimSpace(m.path.Value())
		if path == "" {
			m.state.Error = "No file selected."
			return m, nil
		}
		if !extract.Accepts(path, "") {
			m.state.Error = "Only PDF and Word files are supported."
			return m, nil
		}
		m.state.Error = ""
		m.state.Extracting = true
		m.state.DocumentName = filepath.Base(path)
		return m, extractCmd(m.ctx, m.deps.Extract, path)
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m Model) onExtracted(msg extractedMsg) (tea.Model, tea.Cmd) {
	m.state.Extracting = false
	if m.state.Stage != StageExtracting {
		return m, nil
	}
	if msg.err != nil {
		m.state.Error = "Extraction failed: " + msg.err.Error()
		return m, nil
	}
	m.source = msg.text
	m.state.SourceChars = len([]rune(msg.text))
	m.state.Stage = StageMCQ
	m.state.Error = ""
	m.path.Blur()
	return m, nil
}

func (m Model) onMCQKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Generating {
		return m, nil
	}
	switch msg.String() {
	case "q":
		m.deps.Credentials.Clear()
		return m, tea.Quit
	case "k":
		return m.openKeyForm()
	case "esc", "b":
		return m.resetAll()
	case "enter", "g":
		if m.deps.Generator == nil || m.deps.Generator.InProgress() {
			return m, nil
		}
		m.state.Error = ""
		m.state.Generating = true
		m.state.Progress = 0
		req := generate.Request{SourceText: m.source, Provider: m.state.Provider}
		return m, generateCmd(m.ctx, m.deps.Generator, req)
	}
	return m, nil
}

func (m Model) onGenerated(msg generatedMsg) (tea.Model, tea.Cmd) {
	m.state.Generating = false
	if m.state.Stage != StageMCQ {
		return m, nil
	}
	if msg.err != nil {
		m.state.Progress = 0
		var missing *generate.MissingKeyError
		if errors.As(msg.err, &missing) {
			m.state.Error = msg.err.Error()
			return m, nil
		}
		m.state.Error = "MCQ generation failed: " + msg.err.Error()
		return m, nil
	}
	session, err := quiz.New(msg.set, m.deps.Shuffler)
	if err != nil {
		m.state.Error = "MCQ generation failed: " + err.Error()
		return m, nil
	}
	m.session = session
	m.state.Stage = StageQuiz
	m.state.Error = ""
	m.state.Cursor = 0
	m.state.Outcome = nil
	m.state.History = nil
	m.state.Score = 0
	m.state.Total = msg.set.Len()
	logging.WithContext(m.ctx).WithField("questions", msg.set.Len()).Debug("quiz started")
	return m, nil
}

func (m Model) onQuizKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.session.Current()
	switch key := msg.String(); key {
	case "q":
		m.deps.Credentials.Clear()
		return m, tea.Quit
	case "up", "k":
		if m.state.Cursor > 0 {
			m.state.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.state.Cursor < len(view.Options)-1 {
			m.state.Cursor++
		}
		return m, nil
	case "enter", " ":
		return m.selectOption(view, m.state.Cursor)
	case "1", "2", "3", "4":
		return m.selectOption(view, int(key[0]-'1'))
	case "r":
		m.session.Restart()
		m.seq++
		m.state.Cursor = 0
		m.state.Outcome = nil
		m.state.History = nil
		m.state.Score = 0
		return m, nil
	case "s", "esc":
		return m.resetAll()
	}
	return m, nil
}

func (m Model) selectOption(view quiz.View, index int) (tea.Model, tea.Cmd) {
	if index < 0 || index >= len(view.Options) {
		return m, nil
	}
	outcome, ok := m.session.Select(view.Options[index])
	if !ok {
		return m, nil
	}
	m.state.Cursor = index
	m.state.Outcome = &outcome
	m.state.Score = m.session.State().Score
	m.state.History = append(m.state.History, AnswerRecord{
		Index:    view.Index,
		Question: view.Question,
		Selected: outcome.Selected,
		Answer:   outcome.Answer,
		Correct:  outcome.Correct,
	})
	m.seq++
	return m, advanceAfter(m.opts.AdvanceDelay, m.seq)
}

func (m Model) onAdvance(msg advanceMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || m.session == nil || m.state.Stage != StageQuiz {
		return m, nil
	}
	transition := m.session.Advance()
	switch transition.Kind {
	case quiz.TransitionNext:
		m.state.Cursor = 0
		m.state.Outcome = nil
	case quiz.TransitionComplete:
		m.state.Stage = StageDone
		m.state.Score = transition.Score
		m.state.Total = transition.Total
		m.review.SetRows(reviewRows(m.state.History))
		logging.WithContext(m.ctx).
			WithField("score", transition.Score).
			WithField("total", transition.Total).
			Info("quiz complete")
	}
	return m, nil
}

func (m Model) onDoneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.deps.Credentials.Clear()
		return m, tea.Quit
	case "enter", "s":
		return m.resetAll()
	}
	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)
	return m, cmd
}

// resetAll drops the key, the document text, and the questions, and returns
// to the landing screen.
func (m Model) resetAll() (tea.Model, tea.Cmd) {
	m.deps.Credentials.Clear()
	m.source = ""
	m.session = nil
	m.seq++
	m.path.SetValue("")
	m.path.Blur()
	m.keyForm = m.keyForm.close()
	m.review.SetRows(nil)
	m.state = State{
		Stage:    StageLanding,
		Provider: m.state.Provider,
		Info:     m.state.Info,
	}
	logging.WithContext(m.ctx).Debug("session reset")
	return m, nil
}

func extractCmd(ctx context.Context, fn func(context.Context, string) (string, error), path string) tea.Cmd {
	return func() tea.Msg {
		if fn == nil {
			fn = extract.File
		}
		text, err := fn(ctx, path)
		return extractedMsg{text: text, err: err}
	}
}

func generateCmd(ctx context.Context, gen *generate.Generator, req generate.Request) tea.Cmd {
	return func() tea.Msg {
		set, err := gen.Generate(ctx, req)
		return generatedMsg{set: set, err: err}
	}
}

func advanceAfter(delay time.Duration, seq int) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return advanceMsg{seq: seq} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return advanceMsg{seq: seq} })
}
