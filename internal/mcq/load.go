package mcq

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a question file (JSON or YAML array) and validates every entry.
// Unlike Parse, a question file is authored input: invalid entries are an error.
func LoadFile(path string) (QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return QuestionSet{}, fmt.Errorf("read question file: %w", err)
	}
	questions, err := parseFile(data, path)
	if err != nil {
		return QuestionSet{}, err
	}
	for i, q := range questions {
		if err := Validate(q); err != nil {
			return QuestionSet{}, fmt.Errorf("questions[%d]: %w", i, err)
		}
	}
	return NewQuestionSet(questions)
}

func parseFile(data []byte, path string) ([]Question, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		return parseJSONFile(data)
	}
	return parseYAMLFile(data)
}

func parseJSONFile(data []byte) ([]Question, error) {
	var questions []Question
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return questions, nil
}

func parseYAMLFile(data []byte) ([]Question, error) {
	var questions []Question
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return questions, nil
}
