package live

import (
	"fmt"
	"strconv"
	"strings"
)

// formatIndex formats a question index.
func formatIndex(index int) string {
	return "Q" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return strconv.Itoa(value)
	}
	return "0" + strconv.Itoa(value)
}

// formatQuestionText truncates question text for display.
func formatQuestionText(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	const limit = 80
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

func formatMark(correct bool) string {
	if correct {
		return "✓"
	}
	return "✗"
}

// formatProgressLabel describes the generation step for the progress line.
func formatProgressLabel(progress float64) string {
	switch {
	case progress >= 1:
		return "Questions ready"
	case progress >= 0.85:
		return "Checking questions..."
	case progress >= 0.7:
		return "Reading the reply..."
	default:
		return "Talking to the LLM provider..."
	}
}

func formatScore(score, total int) string {
	return fmt.Sprintf("You scored %d out of %d", score, total)
}

func formatQuestionHeader(index, total, score int) string {
	return fmt.Sprintf("Question %d of %d    Score: %d", index+1, total, score)
}
