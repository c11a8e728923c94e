package mcq

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func sampleQuestions() []Question {
	return []Question{
		{
			Question: "What is the capital of France?",
			Options:  []string{"Berlin", "Paris", "Rome", "Madrid"},
			Answer:   "Paris",
		},
		{
			Question: "Which gas do plants absorb?",
			Options:  []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"},
			Answer:   "Carbon dioxide",
		},
	}
}

// TestParseRoundTrip verifies parsing a serialized valid set returns an equal set.
func TestParseRoundTrip(t *testing.T) {
	set, err := NewQuestionSet(sampleQuestions())
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	payload, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := Parse(string(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(parsed.Questions(), set.Questions()) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", parsed.Questions(), set.Questions())
	}
}

// TestParseRepairsSurroundingProse verifies the bracketed payload is salvaged.
func TestParseRepairsSurroundingProse(t *testing.T) {
	raw := "Sure! Here are your questions:\n" +
		`[{"question":"2+2?","options":["3","4","5","6"],"answer":"4"}]` +
		"\nHope that helps!"
	set, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", set.Len())
	}
	if got := set.At(0).Answer; got != "4" {
		t.Fatalf("expected answer 4, got %q", got)
	}
}

// TestParseRepairsCodeFence verifies fenced JSON output is accepted.
func TestParseRepairsCodeFence(t *testing.T) {
	raw := "```json\n[\n  {\"question\":\"Q?\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"answer\":\"c\"}\n]\n```"
	set, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", set.Len())
	}
}

func TestParseRejections(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{name: "plain prose", raw: "not json at all", reason: ReasonMalformedResponse},
		{name: "broken array", raw: "Here: [{\"question\": \"oops\",]", reason: ReasonMalformedJSON},
		{name: "empty array", raw: "[]", reason: ReasonNoQuestions},
		{
			name:   "nothing valid",
			raw:    `[{"question":"Q","options":["a","b"],"answer":"a"}]`,
			reason: ReasonNoValidQuestions,
		},
		{name: "object not array", raw: `{"question":"Q"}`, reason: ReasonMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Reason != tt.reason {
				t.Fatalf("expected reason %q, got %q", tt.reason, parseErr.Reason)
			}
		})
	}
}

// TestParseFiltersInvalidQuestions verifies one invalid record is dropped.
func TestParseFiltersInvalidQuestions(t *testing.T) {
	raw := `[
		{"question":"Valid?","options":["a","b","c","d"],"answer":"b"},
		{"question":"Invalid?","options":["a","b","c","d"],"answer":"z"}
	]`
	set, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", set.Len())
	}
	if set.At(0).Question != "Valid?" {
		t.Fatalf("unexpected question kept: %+v", set.At(0))
	}
}

// TestParseDropsWrongTypes verifies elements with mistyped fields are skipped.
func TestParseDropsWrongTypes(t *testing.T) {
	raw := `[
		{"question":"First","options":["a","b","c","d"],"answer":"a"},
		{"question":42,"options":["a","b","c","d"],"answer":"a"},
		"just a string",
		{"question":"Dupes","options":["a","a","c","d"],"answer":"a"},
		{"question":"Last","options":["w","x","y","z"],"answer":"z"}
	]`
	set, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", set.Len())
	}
	if set.At(0).Question != "First" || set.At(1).Question != "Last" {
		t.Fatalf("unexpected order: %+v", set.Questions())
	}
}

// TestParseFallsBackWhenFirstQuestionEmpty verifies the repair path runs
// when the direct decode lacks a leading question.
func TestParseFallsBackWhenFirstQuestionEmpty(t *testing.T) {
	raw := `[{"question":"","options":["a","b","c","d"],"answer":"a"},{"question":"Q","options":["a","b","c","d"],"answer":"d"}]`
	set, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set.Len() != 1 || set.At(0).Answer != "d" {
		t.Fatalf("unexpected set: %+v", set.Questions())
	}
}

// TestQuestionSetIsImmutable verifies accessors return copies.
func TestQuestionSetIsImmutable(t *testing.T) {
	set, err := NewQuestionSet(sampleQuestions())
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	q := set.At(0)
	q.Options[0] = "changed"
	all := set.Questions()
	all[1].Question = "changed"
	if set.At(0).Options[0] != "Berlin" || set.At(1).Question == "changed" {
		t.Fatalf("set was mutated through accessor copies")
	}
}
