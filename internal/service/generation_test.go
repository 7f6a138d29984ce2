package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quizforge/internal/domain"
	"quizforge/internal/material"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) SanitizeModel(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	args := m.Called(ctx, model, prompt)
	return args.String(0), args.Error(1)
}

func TestGenerate_EndToEnd(t *testing.T) {
	generator := new(MockTextGenerator)
	generator.On("SanitizeModel", "").Return("gemini-2.0-flash", nil)

	var capturedPrompt string
	generator.On("Generate", mock.Anything, "gemini-2.0-flash", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			capturedPrompt = args.String(2)
		}).
		Return(`{"questions":[{"prompt":"What is photosynthesis?","type":"short","difficulty":"easy","answer":"It converts light into chemical energy.","options":[]}]}`, nil)

	svc := NewGenerationService(generator)
	count := 2
	result, err := svc.Generate(context.Background(), domain.GenerationInput{
		Difficulty:    "easy",
		Format:        "short",
		QuestionCount: &count,
		TextInput:     "Photosynthesis converts light into chemical energy.",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "gemini-2.0-flash", result.Model)
	assert.Equal(t, domain.DifficultyEasy, result.Difficulty)
	assert.Equal(t, domain.FormatShort, result.Format)
	require.NotNil(t, result.QuestionCount)
	assert.Equal(t, 2, *result.QuestionCount)
	assert.Equal(t, len([]rune("Photosynthesis converts light into chemical energy.")), result.MaterialLength)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, "What is photosynthesis?", result.Questions[0].Prompt)

	assert.Contains(t, capturedPrompt, "Generate exactly 2 questions.")
	assert.Contains(t, capturedPrompt, "Photosynthesis converts light into chemical energy.")
	generator.AssertExpectations(t)
}

func TestGenerate_NoMaterialFailsBeforeGatewayCall(t *testing.T) {
	generator := new(MockTextGenerator)
	generator.On("SanitizeModel", "").Return("gemini-2.0-flash", nil)

	svc := NewGenerationService(generator)
	_, err := svc.Generate(context.Background(), domain.GenerationInput{})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNoMaterial, domainErr.Code)
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_UnlistedModelFailsBeforeGatewayCall(t *testing.T) {
	generator := new(MockTextGenerator)
	generator.On("SanitizeModel", "unlisted-model-x").
		Return("", domain.NewModelNotAllowedError("unlisted-model-x"))

	svc := NewGenerationService(generator)
	_, err := svc.Generate(context.Background(), domain.GenerationInput{
		Model:     "unlisted-model-x",
		TextInput: "some material",
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeModelNotAllowed, domainErr.Code)
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_FileTextsFollowPastedTextInUploadOrder(t *testing.T) {
	generator := new(MockTextGenerator)
	generator.On("SanitizeModel", "").Return("gemini-2.0-flash", nil)

	var capturedPrompt string
	generator.On("Generate", mock.Anything, "gemini-2.0-flash", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			capturedPrompt = args.String(2)
		}).
		Return(`{"questions":[]}`, nil)

	svc := NewGenerationService(generator)
	_, err := svc.Generate(context.Background(), domain.GenerationInput{
		TextInput: "pasted notes",
		Files: []domain.UploadedFile{
			{Name: "a.txt", MIMEType: "text/plain", Data: []byte("alpha content")},
			{Name: "b.txt", MIMEType: "text/plain", Data: []byte("beta content")},
		},
	})
	require.NoError(t, err)

	pastedIdx := strings.Index(capturedPrompt, "pasted notes")
	alphaIdx := strings.Index(capturedPrompt, "alpha content")
	betaIdx := strings.Index(capturedPrompt, "beta content")
	require.GreaterOrEqual(t, pastedIdx, 0)
	assert.Less(t, pastedIdx, alphaIdx)
	assert.Less(t, alphaIdx, betaIdx)
}

func TestGenerate_ExtractionErrorPropagates(t *testing.T) {
	generator := new(MockTextGenerator)
	generator.On("SanitizeModel", "").Return("gemini-2.0-flash", nil)

	svc := NewGenerationService(generator)
	_, err := svc.Generate(context.Background(), domain.GenerationInput{
		TextInput: "some material",
		Files: []domain.UploadedFile{
			{Name: "slides.pptx", MIMEType: "application/vnd.ms-powerpoint", Data: []byte{0x1}},
		},
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnsupportedFormat, domainErr.Code)
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_OversizedMaterialIsTruncatedForThePrompt(t *testing.T) {
	generator := new(MockTextGenerator)
	generator.On("SanitizeModel", "").Return("gemini-2.0-flash", nil)

	var capturedPrompt string
	generator.On("Generate", mock.Anything, "gemini-2.0-flash", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			capturedPrompt = args.String(2)
		}).
		Return(`{"questions":[]}`, nil)

	svc := NewGenerationService(generator)
	result, err := svc.Generate(context.Background(), domain.GenerationInput{
		TextInput: strings.Repeat("x", material.MaxChars+100),
	})
	require.NoError(t, err)

	assert.Contains(t, capturedPrompt, material.TruncationMarker)
	assert.Equal(t, material.MaxChars+len([]rune(material.TruncationMarker)), result.MaterialLength)
}

func TestGenerate_MalformedModelOutputPropagates(t *testing.T) {
	generator := new(MockTextGenerator)
	generator.On("SanitizeModel", "").Return("gemini-2.0-flash", nil)
	generator.On("Generate", mock.Anything, "gemini-2.0-flash", mock.AnythingOfType("string")).
		Return("not json at all", nil)

	svc := NewGenerationService(generator)
	_, err := svc.Generate(context.Background(), domain.GenerationInput{TextInput: "material"})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeMalformedModelOutput, domainErr.Code)
	assert.Equal(t, "not json at all", domainErr.Context["raw_output"])
}
