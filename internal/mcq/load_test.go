package mcq

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadFileYAML verifies YAML question files load in order.
func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yml")
	payload := `- question: "What is 2+2?"
  options: ["3", "4", "5", "6"]
  answer: "4"
- question: "Largest planet?"
  options: ["Mars", "Venus", "Jupiter", "Earth"]
  answer: "Jupiter"
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	set, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", set.Len())
	}
	if set.At(1).Answer != "Jupiter" {
		t.Fatalf("unexpected second question: %+v", set.At(1))
	}
}

// TestLoadFileJSON verifies JSON question files load.
func TestLoadFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	payload := `[{"question":"Q?","options":["a","b","c","d"],"answer":"c"}]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	set, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", set.Len())
	}
}

// TestLoadFileRejectsInvalidEntries verifies authored files are strict.
func TestLoadFileRejectsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad-answer.json": `[{"question":"Q?","options":["a","b","c","d"],"answer":"x"}]`,
		"unknown.json":    `[{"question":"Q?","options":["a","b","c","d"],"answer":"a","hint":"h"}]`,
		"empty.yml":       `[]`,
	}
	for name, payload := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
