package extract

import (
	"path/filepath"
	"strings"
)

// Format is a document type the extractor recognizes.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	// FormatDOC is legacy binary Word. It passes the picker check but has no
	// text reader.
	FormatDOC Format = "doc"
)

// MIME types accepted by the document picker.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEDOC  = "application/msword"
)

var acceptedMIME = map[string]Format{
	MIMEPDF:  FormatPDF,
	MIMEDOCX: FormatDOCX,
	MIMEDOC:  FormatDOC,
}

// Detect resolves the document format from a MIME hint, falling back to the
// file extension. ok is false for anything outside PDF and Word.
func Detect(name, mimeHint string) (Format, bool) {
	mime := strings.ToLower(strings.TrimSpace(mimeHint))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if format, ok := acceptedMIME[mime]; ok {
		return format, true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatDOCX, true
	case ".doc":
		return FormatDOC, true
	}
	// Browsers report some Word files under other "word" MIME variants.
	if strings.Contains(mime, "word") {
		return FormatDOCX, true
	}
	return "", false
}

// Accepts reports whether a file passes the document picker check.
func Accepts(name, mimeHint string) bool {
	_, ok := Detect(name, mimeHint)
	return ok
}
