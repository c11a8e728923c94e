// Package extract reads plain text out of PDF and Word documents.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"reviserr/internal/logging"
)

// MinTextChars is the shortest trimmed text accepted from a document.
const MinTextChars = 20

const sniffLen = 512

// Extract reads the document in r and returns its trimmed text. name and
// mimeHint select the reader; either may be empty.
func Extract(ctx context.Context, r io.ReaderAt, size int64, name, mimeHint string) (string, error) {
	format, ok := Detect(name, mimeHint)
	if !ok {
		return "", &UnsupportedFormatError{Name: name}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = readPDF(r, size)
	case FormatDOCX:
		text, err = readDOCX(r, size)
	default:
		return "", &UnsupportedFormatError{Name: name, Format: format}
	}
	if err != nil {
		return "", &ExtractionError{Format: format, Reason: fmt.Sprintf("%s read failed", strings.ToUpper(string(format))), Err: err}
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinTextChars {
		return "", &ExtractionError{Format: format, Reason: "Unable to extract meaningful text. Is your file a valid document?"}
	}
	logging.WithContext(ctx).
		WithField("format", format).
		WithField("chars", utf8.RuneCountInString(text)).
		Debug("document text extracted")
	return text, nil
}

// File opens path and extracts its text. The MIME type is sniffed from the
// content so a PDF without its extension is still recognized.
func File(ctx context.Context, path string) (string, error) {
	format, _ := Detect(path, "")
	unreadable := func(err error) error {
		return &ExtractionError{Format: format, Reason: "Unable to read the file", Err: err}
	}

	file, err := os.Open(path)
	if err != nil {
		return "", unreadable(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", unreadable(err)
	}
	head := make([]byte, sniffLen)
	n, err := file.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return "", unreadable(err)
	}
	return Extract(ctx, file, info.Size(), path, sniffMIME(head[:n]))
}

// sniffMIME only reports types the extension cannot be trusted over. A DOCX
// sniffs as a generic zip, so it is left to the extension.
func sniffMIME(head []byte) string {
	mime := http.DetectContentType(head)
	if strings.HasPrefix(mime, MIMEPDF) {
		return MIMEPDF
	}
	return ""
}
