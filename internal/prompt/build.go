package prompt

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxSourceChars bounds how much document text is sent to the provider.
	MaxSourceChars = 3200
	// QuestionCount is the number of questions requested from the model.
	QuestionCount = 10
	// TruncationMarker is appended when the source text is cut.
	TruncationMarker = "\n[truncated]"
	// SourceOpen and SourceClose delimit the study material inside the prompt.
	SourceOpen  = "<<<"
	SourceClose = ">>>"
)

var instructions = fmt.Sprintf(`Generate %d multiple choice questions (MCQs) from the following study material.
For each question, provide:
  - question (string)
  - options (array of exactly 4 strings)
  - answer (string, identical to one of the options)

Study Material:
`, QuestionCount)

const responseFormat = `

Respond only with a valid JSON array of the following format, with no text before or after it:
[
  {
    "question": "Sample question?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "answer": "Option B"
  }
]
`

// Build returns the provider-neutral instruction text for a document.
func Build(sourceText string) string {
	var builder strings.Builder
	builder.WriteString(instructions)
	builder.WriteString(SourceOpen)
	builder.WriteByte('\n')
	builder.WriteString(Truncate(sanitize(sourceText)))
	builder.WriteByte('\n')
	builder.WriteString(SourceClose)
	builder.WriteString(responseFormat)
	return builder.String()
}

// Truncate cuts text to MaxSourceChars characters and marks the cut.
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxSourceChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxSourceChars]) + TruncationMarker
}

// sanitize normalizes line endings to \n and drops control characters
// other than newlines and tabs.
func sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r == '\r' {
			return '\n'
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}
