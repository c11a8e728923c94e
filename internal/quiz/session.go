// Package quiz runs a question set one question at a time, tracking the
// selection, the score, and the presentation order of each question's options.
package quiz

import (
	"math/rand"
	"slices"
	"sync"

	"reviserr/internal/mcq"
)

// Phase is the answer state of the active question.
type Phase int

const (
	// PhaseUnanswered accepts a selection.
	PhaseUnanswered Phase = iota
	// PhaseAnswered holds a selection and waits for Advance.
	PhaseAnswered
	// PhaseComplete means every question has been answered.
	PhaseComplete
)

// String returns a lowercase phase label.
func (p Phase) String() string {
	switch p {
	case PhaseUnanswered:
		return "unanswered"
	case PhaseAnswered:
		return "answered"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// View is the active question as presented to the player.
type View struct {
	Index    int
	Total    int
	Question string
	Options  []string
}

// Outcome describes a recorded selection.
type Outcome struct {
	Correct  bool
	Selected string
	Answer   string
}

// TransitionKind says where Advance moved the session.
type TransitionKind int

const (
	// TransitionNone means Advance was called without an answer and nothing moved.
	TransitionNone TransitionKind = iota
	// TransitionNext moved to the following question.
	TransitionNext
	// TransitionComplete finished the quiz.
	TransitionComplete
)

// Transition is the result of Advance.
type Transition struct {
	Kind  TransitionKind
	Index int
	Score int
	Total int
}

// State is a snapshot of session progress.
type State struct {
	CurrentIndex int
	Score        int
	Selected     *string
	Answered     bool
	Phase        Phase
	Total        int
}

// Session is the quiz engine for one question set.
type Session struct {
	mu       sync.Mutex
	set      mcq.QuestionSet
	shuffler Shuffler

	index    int
	score    int
	selected *string
	phase    Phase
	options  []string
}

// New starts a session on the first question. A nil shuffler uses the
// process-wide random source.
func New(set mcq.QuestionSet, shuffler Shuffler) (*Session, error) {
	if set.Len() == 0 {
		return nil, mcq.ErrEmptySet
	}
	if shuffler == nil {
		shuffler = globalShuffler{}
	}
	s := &Session{set: set, shuffler: shuffler}
	s.activate(0)
	return s, nil
}

// Current returns the active question with its options in presentation
// order. After completion it returns the last question.
func (s *Session) Current() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Index:    s.index,
		Total:    s.set.Len(),
		Question: s.set.At(s.index).Question,
		Options:  slices.Clone(s.options),
	}
}

// Select records option as the answer to the active question. It reports
// false and changes nothing when the question is already answered, the quiz
// is complete, or option is not one of the presented choices.
func (s *Session) Select(option string) (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseUnanswered || !slices.Contains(s.options, option) {
		return Outcome{}, false
	}
	q := s.set.At(s.index)
	correct := q.IsCorrect(option)
	if correct {
		s.score++
	}
	selected := option
	s.selected = &selected
	s.phase = PhaseAnswered
	return Outcome{Correct: correct, Selected: option, Answer: q.Answer}, true
}

// Advance moves past an answered question, either to the next question with
// freshly shuffled options or to completion.
func (s *Session) Advance() Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.set.Len()
	if s.phase != PhaseAnswered {
		return Transition{Kind: TransitionNone, Index: s.index, Score: s.score, Total: total}
	}
	if s.index+1 >= total {
		s.phase = PhaseComplete
		return Transition{Kind: TransitionComplete, Index: s.index, Score: s.score, Total: total}
	}
	s.activate(s.index + 1)
	return Transition{Kind: TransitionNext, Index: s.index, Score: s.score, Total: total}
}

// Restart returns to the first question with a zero score. The question set
// is unchanged.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score = 0
	s.activate(0)
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	var selected *string
	if s.selected != nil {
		value := *s.selected
		selected = &value
	}
	return State{
		CurrentIndex: s.index,
		Score:        s.score,
		Selected:     selected,
		Answered:     s.phase != PhaseUnanswered,
		Phase:        s.phase,
		Total:        s.set.Len(),
	}
}

// activate makes question i current. Callers hold mu.
func (s *Session) activate(i int) {
	s.index = i
	s.selected = nil
	s.phase = PhaseUnanswered
	s.options = s.set.At(i).Options
	s.shuffler.Shuffle(len(s.options), func(a, b int) {
		s.options[a], s.options[b] = s.options[b], s.options[a]
	})
}
