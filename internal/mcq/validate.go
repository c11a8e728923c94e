package mcq

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/xeipuuv/gojsonschema"
)

// questionSchema describes the shape a generated question must have before it
// is considered for the answer membership check.
const questionSchema = `{
	"type": "object",
	"properties": {
		"question": {"type": "string", "minLength": 1},
		"options": {
			"type": "array",
			"items": {"type": "string"},
			"minItems": 4,
			"maxItems": 4,
			"uniqueItems": true
		},
		"answer": {"type": "string"}
	},
	"required": ["question", "options", "answer"]
}`

var compiledSchema = mustCompileSchema(questionSchema)

func mustCompileSchema(schema string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("compile question schema: %v", err))
	}
	return compiled
}

// Issue captures a single problem with a question.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports why a question violates the question invariant.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "invalid question"
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("invalid question: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Validate checks a question against the invariant: a non-empty prompt,
// exactly four distinct options, and an answer equal to one of them.
func Validate(q Question) error {
	collector := &issueCollector{}
	result, err := compiledSchema.Validate(gojsonschema.NewGoLoader(schemaView(q)))
	if err != nil {
		collector.add("question", err.Error())
		return collector.result()
	}
	collectSchemaIssues(collector, result)
	checkAnswer(collector, q)
	return collector.result()
}

// validateRaw runs the same checks against a raw decoded element, so that
// elements with wrong field types are rejected instead of coerced.
func validateRaw(raw []byte, q Question) error {
	collector := &issueCollector{}
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		collector.add("question", err.Error())
		return collector.result()
	}
	collectSchemaIssues(collector, result)
	if len(collector.issues) == 0 {
		checkAnswer(collector, q)
	}
	return collector.result()
}

// Filter keeps only the questions that satisfy Validate, preserving order.
func Filter(questions []Question) []Question {
	return lo.Filter(questions, func(q Question, _ int) bool {
		return Validate(q) == nil
	})
}

func collectSchemaIssues(collector *issueCollector, result *gojsonschema.Result) {
	if result.Valid() {
		return
	}
	for _, desc := range result.Errors() {
		collector.add(desc.Field(), desc.Description())
	}
}

func checkAnswer(collector *issueCollector, q Question) {
	if len(q.Options) != OptionCount {
		return
	}
	if !lo.Contains(q.Options, q.Answer) {
		collector.add("answer", fmt.Sprintf("%q is not one of the options", q.Answer))
	}
}

// schemaView converts a question to generic JSON types. A nil options slice is
// kept as nil so the schema reports it as missing rather than empty.
func schemaView(q Question) map[string]interface{} {
	view := map[string]interface{}{
		"question": q.Question,
		"answer":   q.Answer,
	}
	if q.Options != nil {
		options := make([]interface{}, 0, len(q.Options))
		for _, option := range q.Options {
			options = append(options, option)
		}
		view["options"] = options
	}
	return view
}
