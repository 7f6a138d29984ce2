// Package extractor converts uploaded file bytes into plain text, branching
// on the declared MIME type or the filename extension.
package extractor

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"quizforge/internal/domain"

	"github.com/ledongthuc/pdf"
)

// textExtensions are decoded as UTF-8 text verbatim.
var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".json": true,
}

// Extract produces the plain text of an uploaded file. It is a pure
// transformation of bytes to text: an empty buffer yields an empty string,
// PDF payloads go through a PDF text-extraction routine, text payloads are
// decoded verbatim, and everything else fails with an unsupported-format
// error naming the offending file.
func Extract(file domain.UploadedFile) (string, error) {
	if len(file.Data) == 0 {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	mimeType := strings.ToLower(strings.TrimSpace(file.MIMEType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	switch {
	case mimeType == "application/pdf" || ext == ".pdf":
		return extractPDF(file)
	case strings.HasPrefix(mimeType, "text/") || textExtensions[ext]:
		return string(file.Data), nil
	default:
		return "", domain.NewUnsupportedFormatError(file.Name, file.MIMEType)
	}
}

func extractPDF(file domain.UploadedFile) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		return "", domain.NewExtractionFailureError(file.Name, err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", domain.NewExtractionFailureError(file.Name, err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return "", domain.NewExtractionFailureError(file.Name, err)
	}
	return string(text), nil
}
