package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// readDOCX walks the main document part and returns paragraph text, one
// paragraph per line.
func readDOCX(r io.ReaderAt, size int64) (string, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("DOCX extract failed: %w", err)
	}
	var body *zip.File
	for _, f := range archive.File {
		if f.Name == docxBody {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("DOCX extract failed: missing %s", docxBody)
	}
	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("DOCX extract failed: %w", err)
	}
	defer rc.Close()
	return paragraphText(rc)
}

func paragraphText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var (
		sb     strings.Builder
		inText bool
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("DOCX extract failed: %w", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
