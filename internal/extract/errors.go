package extract

import "fmt"

// UnsupportedFormatError reports a document type that cannot be read.
type UnsupportedFormatError struct {
	Name   string
	Format Format
}

// Error returns the user-facing message.
func (err *UnsupportedFormatError) Error() string {
	if err.Format == FormatDOC {
		return "Unsupported file type. Legacy .doc files cannot be read; save the document as .docx or PDF."
	}
	return "Unsupported file type."
}

// ExtractionError reports a document that could not be turned into usable text.
type ExtractionError struct {
	Format Format
	Reason string
	Err    error
}

// Error returns the reason, with the cause when present.
func (err *ExtractionError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("%s: %v", err.Reason, err.Err)
	}
	return err.Reason
}

// Unwrap exposes the underlying reader error.
func (err *ExtractionError) Unwrap() error {
	return err.Err
}
