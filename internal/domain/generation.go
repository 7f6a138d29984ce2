package domain

import "context"

// Difficulty is the requested difficulty level for generated questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Format is the requested question format.
type Format string

const (
	FormatMCQ   Format = "mcq"
	FormatShort Format = "short"
	FormatLong  Format = "long"
)

// NormalizeDifficulty maps a raw string to a known difficulty.
// Unrecognized or missing values fall back to medium, never an error.
func NormalizeDifficulty(raw string) Difficulty {
	switch Difficulty(raw) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(raw)
	default:
		return DifficultyMedium
	}
}

// NormalizeFormat maps a raw string to a known format, falling back to mcq.
func NormalizeFormat(raw string) Format {
	switch Format(raw) {
	case FormatMCQ, FormatShort, FormatLong:
		return Format(raw)
	default:
		return FormatMCQ
	}
}

// UploadedFile is a request-scoped attachment. It is discarded after its
// text has been extracted.
type UploadedFile struct {
	Name     string
	MIMEType string
	Data     []byte
}

// GenerationInput is the caller-facing request before material aggregation.
// Difficulty and Format are raw strings here; the pipeline normalizes them.
type GenerationInput struct {
	Difficulty    string
	Format        string
	Model         string
	QuestionCount *int
	TextInput     string
	Files         []UploadedFile
}

// GenerationRequest is the aggregated request handed to the prompt builder.
// Material is guaranteed non-empty by the aggregation step.
type GenerationRequest struct {
	Difficulty    Difficulty
	Format        Format
	QuestionCount *int
	Model         string
	Material      string
}

// Question is a single generated assessment question. Options is non-empty
// only for mcq questions.
type Question struct {
	Prompt     string   `json:"prompt"`
	Type       string   `json:"type"`
	Difficulty string   `json:"difficulty"`
	Answer     string   `json:"answer"`
	Options    []string `json:"options"`
}

// GenerationResult is produced once per request and returned directly to the
// caller; it is never persisted.
type GenerationResult struct {
	Model          string
	Difficulty     Difficulty
	Format         Format
	QuestionCount  *int
	MaterialLength int
	Questions      []Question
}

// TextGenerator sends a rendered prompt to an external generation endpoint
// and returns the raw generated text. Implementations own the allow-list and
// credential; they make exactly one outbound call per invocation and never
// retry.
type TextGenerator interface {
	// SanitizeModel normalizes a model identifier and enforces the
	// allow-list. An empty name selects the default model.
	SanitizeModel(name string) (string, error)
	// Generate performs the outbound call for an already sanitized model.
	Generate(ctx context.Context, model, prompt string) (string, error)
}
