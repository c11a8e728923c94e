package generate

import (
	"errors"
	"fmt"
)

// ErrInProgress is returned when Generate is called while a run is pending.
var ErrInProgress = errors.New("generation already in progress")

// ValidationKind classifies bad or missing input.
type ValidationKind string

const (
	// InsufficientText marks source text below MinSourceChars.
	InsufficientText ValidationKind = "insufficient_text"
	// NoFile marks a missing document selection.
	NoFile ValidationKind = "no_file"
	// UnsupportedType marks a document type that cannot be extracted.
	UnsupportedType ValidationKind = "unsupported_type"
)

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

// Error returns the validation message.
func (err *ValidationError) Error() string {
	if err.Message != "" {
		return err.Message
	}
	return fmt.Sprintf("invalid input: %s", err.Kind)
}

// MissingKeyError reports that no API key is available for the request.
type MissingKeyError struct{}

// Error returns the user-facing prompt to set a key.
func (*MissingKeyError) Error() string {
	return "Please set your LLM API key first."
}
