package handler

import (
	"io"
	"mime/multipart"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/service"
	"quizforge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenerationHandler handles question generation HTTP requests
type GenerationHandler struct {
	service   service.GenerationService
	validator *validation.Validator
}

// NewGenerationHandler creates a new GenerationHandler instance
func NewGenerationHandler(svc service.GenerationService, validator *validation.Validator) *GenerationHandler {
	return &GenerationHandler{
		service:   svc,
		validator: validator,
	}
}

// Generate handles POST /api/generate. It accepts a multipart form with
// optional pasted text and up to the configured number of file attachments,
// runs the generation pipeline, and returns the generated questions.
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	questionCount, errs := h.validator.ParseQuestionCount(c.FormValue("question_count"))
	if len(errs) > 0 {
		return errs
	}

	fileHeaders := formFiles(c)
	if errs := h.validator.ValidateAttachments(fileHeaders); len(errs) > 0 {
		return errs
	}

	files, err := readAttachments(fileHeaders)
	if err != nil {
		return err
	}

	input := domain.GenerationInput{
		Difficulty:    c.FormValue("difficulty"),
		Format:        c.FormValue("format"),
		Model:         c.FormValue("model"),
		QuestionCount: questionCount,
		TextInput:     c.FormValue("text_input"),
		Files:         files,
	}

	result, err := h.service.Generate(c.Context(), input)
	if err != nil {
		logger.Get().Warn("Generation request failed",
			zap.Error(err),
			zap.Any("request_id", c.Locals("request_id")),
		)
		return err
	}

	return c.JSON(dto.FromGenerationResult(result))
}

// formFiles returns the uploaded file headers, tolerating non-multipart
// requests that carry only pasted text.
func formFiles(c *fiber.Ctx) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["files"]
}

// readAttachments drains each attachment into a request-scoped UploadedFile.
func readAttachments(headers []*multipart.FileHeader) ([]domain.UploadedFile, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	files := make([]domain.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, domain.NewInternalError("failed to open uploaded file", err).
				WithContext("filename", fh.Filename)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, domain.NewInternalError("failed to read uploaded file", err).
				WithContext("filename", fh.Filename)
		}
		files = append(files, domain.UploadedFile{
			Name:     fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}
	return files, nil
}
