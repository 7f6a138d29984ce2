package dto

import "quizforge/internal/domain"

// QuestionResponse represents a generated question in the API response
type QuestionResponse struct {
	Prompt     string   `json:"prompt"`
	Type       string   `json:"type"`
	Difficulty string   `json:"difficulty"`
	Answer     string   `json:"answer"`
	Options    []string `json:"options"`
}

// GenerateResponse represents the generation result in the API response
type GenerateResponse struct {
	Model          string             `json:"model"`
	Difficulty     string             `json:"difficulty"`
	Format         string             `json:"format"`
	QuestionCount  *int               `json:"question_count,omitempty"`
	MaterialLength int                `json:"material_length"`
	Questions      []QuestionResponse `json:"questions"`
}

// FromGenerationResult maps a domain result to its API representation
func FromGenerationResult(result *domain.GenerationResult) *GenerateResponse {
	questions := make([]QuestionResponse, len(result.Questions))
	for i, q := range result.Questions {
		questions[i] = QuestionResponse{
			Prompt:     q.Prompt,
			Type:       q.Type,
			Difficulty: q.Difficulty,
			Answer:     q.Answer,
			Options:    q.Options,
		}
	}
	return &GenerateResponse{
		Model:          result.Model,
		Difficulty:     string(result.Difficulty),
		Format:         string(result.Format),
		QuestionCount:  result.QuestionCount,
		MaterialLength: result.MaterialLength,
		Questions:      questions,
	}
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
