package provider

import "fmt"

// Error reports a failed provider call: a non-success HTTP status or a
// response missing the expected completion field.
type Error struct {
	Provider   Kind
	StatusCode int
	Message    string
	Err        error
}

// Error renders the provider failure for display.
func (err *Error) Error() string {
	name := providerName(err.Provider)
	switch {
	case err.Message != "":
		return fmt.Sprintf("%s API error: %s", name, err.Message)
	case err.StatusCode != 0:
		return fmt.Sprintf("%s API error: %d", name, err.StatusCode)
	case err.Err != nil:
		return fmt.Sprintf("%s API error: %v", name, err.Err)
	default:
		return fmt.Sprintf("%s API error", name)
	}
}

// Unwrap exposes the transport or decode error, if any.
func (err *Error) Unwrap() error {
	return err.Err
}

func providerName(kind Kind) string {
	switch kind {
	case OpenAI:
		return "OpenAI"
	case Cohere:
		return "Cohere"
	default:
		return string(kind)
	}
}
