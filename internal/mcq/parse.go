package mcq

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Parse failure reasons.
const (
	ReasonMalformedJSON     = "malformed JSON"
	ReasonMalformedResponse = "malformed response"
	ReasonNoQuestions       = "no MCQs"
	ReasonNoValidQuestions  = "no valid MCQs"
)

// ParseError reports why a model response could not be turned into questions.
type ParseError struct {
	Reason string
	Err    error
}

// Error returns the parse failure reason.
func (err *ParseError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("%s: %v", err.Reason, err.Err)
	}
	return err.Reason
}

// Unwrap exposes the underlying decode error, if any.
func (err *ParseError) Unwrap() error {
	return err.Err
}

// errDirectDecode signals that the raw text is not itself a usable question array.
var errDirectDecode = errors.New("response is not a question array")

// arrayPattern spans from the first '[' to the last ']' across lines.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// Parse turns raw model output into a validated question set. It first tries
// the whole text as a JSON array, then salvages the outermost bracketed span
// when the model wrapped the payload in prose.
func Parse(raw string) (QuestionSet, error) {
	elements, err := decodeDirect(raw)
	if err != nil {
		elements, err = decodeRepaired(raw)
		if err != nil {
			return QuestionSet{}, err
		}
	}
	if len(elements) == 0 {
		return QuestionSet{}, &ParseError{Reason: ReasonNoQuestions}
	}
	valid := filterRaw(elements)
	if len(valid) == 0 {
		return QuestionSet{}, &ParseError{Reason: ReasonNoValidQuestions}
	}
	return QuestionSet{questions: valid}, nil
}

// decodeDirect accepts raw only when it is a non-empty array whose first
// element carries a non-empty question.
func decodeDirect(raw string) ([]json.RawMessage, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &elements); err != nil {
		return nil, errDirectDecode
	}
	if len(elements) == 0 {
		return nil, errDirectDecode
	}
	var head struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal(elements[0], &head); err != nil || head.Question == "" {
		return nil, errDirectDecode
	}
	return elements, nil
}

func decodeRepaired(raw string) ([]json.RawMessage, error) {
	match := arrayPattern.FindString(raw)
	if match == "" {
		return nil, &ParseError{Reason: ReasonMalformedResponse}
	}
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(match), &elements); err != nil {
		return nil, &ParseError{Reason: ReasonMalformedJSON, Err: err}
	}
	return elements, nil
}

func filterRaw(elements []json.RawMessage) []Question {
	valid := make([]Question, 0, len(elements))
	for _, element := range elements {
		var q Question
		if err := json.Unmarshal(element, &q); err != nil {
			continue
		}
		if err := validateRaw(element, q); err != nil {
			continue
		}
		valid = append(valid, q)
	}
	return valid
}
