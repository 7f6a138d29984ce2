package validation

import (
	"mime/multipart"
	"strconv"
	"strings"

	"quizforge/internal/domain"
)

// Validator provides request validation functionality
type Validator struct {
	MaxQuestionCount int
	MaxFiles         int
	MaxFileSize      int64
}

// NewValidator creates a new validator with the configured request limits
func NewValidator(maxQuestionCount, maxFiles int, maxFileSize int64) *Validator {
	return &Validator{
		MaxQuestionCount: maxQuestionCount,
		MaxFiles:         maxFiles,
		MaxFileSize:      maxFileSize,
	}
}

// ParseQuestionCount parses the optional question_count form field. An empty
// value means no fixed count was requested. Non-numeric input or a value
// outside [1, MaxQuestionCount] is a caller-facing validation failure.
func (v *Validator) ParseQuestionCount(raw string) (*int, domain.ValidationErrors) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	count, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("question_count", raw)}
	}
	if count < 1 || count > v.MaxQuestionCount {
		return nil, domain.ValidationErrors{domain.NewOutOfRangeError("question_count", count, 1, v.MaxQuestionCount)}
	}
	return &count, nil
}

// ValidateAttachments enforces the attachment count cap and per-file size
// ceiling before any file content is read.
func (v *Validator) ValidateAttachments(files []*multipart.FileHeader) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if len(files) > v.MaxFiles {
		errs = append(errs, domain.NewOutOfRangeError("files", len(files), 0, v.MaxFiles))
		return errs
	}

	for _, fh := range files {
		if fh.Size > v.MaxFileSize {
			errs = append(errs, domain.ValidationError{
				Field:   "files",
				Message: "file " + strconv.Quote(fh.Filename) + " exceeds the size limit",
			})
		}
	}
	return errs
}
