package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readPDF returns the text of every page, pages separated by a blank line.
func readPDF(r io.ReaderAt, size int64) (text string, err error) {
	// The reader panics on some malformed content streams.
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("PDF parsing error: %v", recovered)
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("PDF parsing error: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("PDF page %d: %w", i, err)
		}
		sb.WriteString(content)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
