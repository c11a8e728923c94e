package config

import (
	"fmt"
	"strings"
)

// Issue is one rejected setting, addressed by its dotted YAML path.
type Issue struct {
	Field   string
	Message string
}

// ValidationError lists every rejected setting in a config file. Path is
// empty when validating an in-memory Config.
type ValidationError struct {
	Path   string
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "invalid config"
	}
	var b strings.Builder
	if err.Path != "" {
		fmt.Fprintf(&b, "invalid config %s:\n", err.Path)
	}
	for i, issue := range err.Issues {
		if i > 0 {
			b.WriteByte('\n')
		}
		if err.Path != "" {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s: %s", issue.Field, issue.Message)
	}
	return b.String()
}

// issueAdder records a problem with one field.
type issueAdder func(field, message string)

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
