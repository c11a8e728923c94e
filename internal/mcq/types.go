package mcq

import (
	"encoding/json"
	"errors"
)

// OptionCount is the number of answer choices every question carries.
const OptionCount = 4

// Question is a single multiple-choice question with its canonical answer.
type Question struct {
	Question string   `json:"question" yaml:"question"`
	Options  []string `json:"options" yaml:"options"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// IsCorrect reports whether option matches the canonical answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.Answer
}

// ErrEmptySet indicates a question set was built without any questions.
var ErrEmptySet = errors.New("question set is empty")

// QuestionSet is an immutable, non-empty ordered list of validated questions.
type QuestionSet struct {
	questions []Question
}

// NewQuestionSet copies questions into a set. Every question must satisfy Validate.
func NewQuestionSet(questions []Question) (QuestionSet, error) {
	if len(questions) == 0 {
		return QuestionSet{}, ErrEmptySet
	}
	copied := make([]Question, 0, len(questions))
	for _, q := range questions {
		if err := Validate(q); err != nil {
			return QuestionSet{}, err
		}
		copied = append(copied, cloneQuestion(q))
	}
	return QuestionSet{questions: copied}, nil
}

// Len returns the number of questions in the set.
func (s QuestionSet) Len() int {
	return len(s.questions)
}

// At returns a copy of the question at index i.
func (s QuestionSet) At(i int) Question {
	return cloneQuestion(s.questions[i])
}

// Questions returns a copy of all questions in order.
func (s QuestionSet) Questions() []Question {
	out := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, cloneQuestion(q))
	}
	return out
}

// MarshalJSON encodes the set as a plain JSON array of questions.
func (s QuestionSet) MarshalJSON() ([]byte, error) {
	if s.questions == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.questions)
}

func cloneQuestion(q Question) Question {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	q.Options = options
	return q
}
