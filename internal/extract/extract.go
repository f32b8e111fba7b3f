// Package extract pulls plain text out of uploaded documents where the
// format allows it. Extraction is best effort; callers fall back to
// metadata-only analysis when no text comes out.
package extract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"studybuddy-service/internal/domain"
)

// Text returns the document's plain text content, or an empty string when
// the format carries no extractable text (images, word processor formats).
func Text(doc domain.DocumentUpload) (string, error) {
	switch doc.ContentType {
	case "text/plain":
		return string(doc.Data), nil
	case "application/pdf":
		return pdfText(doc.Data)
	default:
		return "", nil
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
