package live

import (
	"reviserr/internal/generate"
	"reviserr/internal/provider"
	"reviserr/internal/quiz"
)

// Stage is the screen currently shown.
type Stage int

const (
	StageLanding Stage = iota
	StageExtracting
	StageMCQ
	StageQuiz
	StageDone
)

// String returns a lowercase stage label.
func (s Stage) String() string {
	switch s {
	case StageLanding:
		return "landing"
	case StageExtracting:
		return "extracting"
	case StageMCQ:
		return "mcq"
	case StageQuiz:
		return "quiz"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// AnswerRecord is one answered question, kept for the review table.
type AnswerRecord struct {
	Index    int
	Question string
	Selected string
	Answer   string
	Correct  bool
}

// State captures what the live UI shows. It never holds the API key or the
// extracted text.
type State struct {
	Stage       Stage
	Provider    provider.Kind
	KeySet      bool
	KeyFormOpen bool

	DocumentName string
	SourceChars  int
	Extracting   bool

	Generating      bool
	GenerationState generate.State
	Progress        float64

	Cursor  int
	Outcome *quiz.Outcome
	History []AnswerRecord
	Score   int
	Total   int

	Error string
	Info  string
}
