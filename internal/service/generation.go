package service

import (
	"context"

	"quizforge/internal/domain"
	"quizforge/internal/extractor"
	"quizforge/internal/logger"
	"quizforge/internal/material"
	"quizforge/internal/prompt"
	"quizforge/internal/questionset"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenerationService defines the material-to-question generation pipeline.
type GenerationService interface {
	Generate(ctx context.Context, input domain.GenerationInput) (*domain.GenerationResult, error)
}

// generationService implements GenerationService
type generationService struct {
	generator domain.TextGenerator
}

// NewGenerationService creates a new instance of generationService
func NewGenerationService(generator domain.TextGenerator) GenerationService {
	return &generationService{generator: generator}
}

// Generate runs the pipeline: extract file texts, aggregate the corpus,
// build the prompt, invoke the gateway, and validate the model output.
// Every entity is request-scoped; the only shared state is the generator's
// immutable configuration.
func (s *generationService) Generate(ctx context.Context, input domain.GenerationInput) (*domain.GenerationResult, error) {
	// Allow-list enforcement happens before extraction so an unlisted model
	// fails fast without touching the files or the network.
	model, err := s.generator.SanitizeModel(input.Model)
	if err != nil {
		return nil, err
	}

	fileTexts, err := s.extractAll(ctx, input.Files)
	if err != nil {
		return nil, err
	}

	corpus, err := material.Aggregate(input.TextInput, fileTexts)
	if err != nil {
		return nil, err
	}

	req := domain.GenerationRequest{
		Difficulty:    domain.NormalizeDifficulty(input.Difficulty),
		Format:        domain.NormalizeFormat(input.Format),
		QuestionCount: input.QuestionCount,
		Model:         model,
		Material:      corpus,
	}

	rendered := prompt.Build(req)

	logger.Get().Info("Dispatching generation request",
		zap.String("model", model),
		zap.String("difficulty", string(req.Difficulty)),
		zap.String("format", string(req.Format)),
		zap.Int("material_chars", len([]rune(corpus))),
		zap.Int("file_count", len(input.Files)),
	)

	raw, err := s.generator.Generate(ctx, model, rendered)
	if err != nil {
		return nil, err
	}

	questions, err := questionset.Parse(raw)
	if err != nil {
		return nil, err
	}

	return &domain.GenerationResult{
		Model:          model,
		Difficulty:     req.Difficulty,
		Format:         req.Format,
		QuestionCount:  req.QuestionCount,
		MaterialLength: len([]rune(corpus)),
		Questions:      questions,
	}, nil
}

// extractAll extracts every attachment concurrently while preserving upload
// order in the result slice.
func (s *generationService) extractAll(ctx context.Context, files []domain.UploadedFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	texts := make([]string, len(files))
	g, _ := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			text, err := extractor.Extract(file)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}
