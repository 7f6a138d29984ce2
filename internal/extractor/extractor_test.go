package extractor

import (
	"errors"
	"testing"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_EmptyBytesReturnsEmptyString(t *testing.T) {
	cases := []domain.UploadedFile{
		{Name: "empty.pdf", MIMEType: "application/pdf"},
		{Name: "empty.txt", MIMEType: "text/plain"},
		{Name: "empty.bin", MIMEType: "application/octet-stream"},
	}
	for _, file := range cases {
		text, err := Extract(file)
		assert.NoError(t, err, "file %s", file.Name)
		assert.Empty(t, text, "file %s", file.Name)
	}
}

func TestExtract_TextTypesDecodedVerbatim(t *testing.T) {
	content := "Photosynthesis converts light into chemical energy.\nLine two."

	cases := []struct {
		name     string
		mimeType string
	}{
		{"notes.txt", ""},
		{"notes.md", ""},
		{"data.csv", ""},
		{"payload.json", ""},
		{"anything.xyz", "text/plain"},
		{"page.weird", "text/html; charset=utf-8"},
	}
	for _, tc := range cases {
		text, err := Extract(domain.UploadedFile{
			Name:     tc.name,
			MIMEType: tc.mimeType,
			Data:     []byte(content),
		})
		require.NoError(t, err, "file %s", tc.name)
		assert.Equal(t, content, text, "file %s", tc.name)
	}
}

func TestExtract_PDFRoutingByMIMEAndExtension(t *testing.T) {
	// Garbage bytes routed to the PDF decoder must surface an extraction
	// failure, proving the routing decision, not an unsupported-format error.
	for _, file := range []domain.UploadedFile{
		{Name: "syllabus.pdf", MIMEType: "", Data: []byte("not a real pdf")},
		{Name: "syllabus.dat", MIMEType: "application/pdf", Data: []byte("not a real pdf")},
	} {
		_, err := Extract(file)
		require.Error(t, err, "file %s", file.Name)

		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.CodeExtractionFailure, domainErr.Code)
		assert.Equal(t, file.Name, domainErr.Context["filename"])
	}
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	_, err := Extract(domain.UploadedFile{
		Name:     "lecture.mp4",
		MIMEType: "video/mp4",
		Data:     []byte{0x00, 0x01},
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnsupportedFormat, domainErr.Code)
	assert.Contains(t, domainErr.Message, "lecture.mp4")
}

func TestExtract_ExtensionIsCaseInsensitive(t *testing.T) {
	text, err := Extract(domain.UploadedFile{
		Name: "NOTES.TXT",
		Data: []byte("uppercase extension"),
	})
	require.NoError(t, err)
	assert.Equal(t, "uppercase extension", text)
}
