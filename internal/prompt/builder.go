// Package prompt renders a generation request into the instruction string
// sent to the external model. Build is a pure function: identical inputs
// always produce an identical prompt.
package prompt

import (
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

var difficultyGuidance = map[domain.Difficulty]string{
	domain.DifficultyEasy:   "Questions should test direct recall of facts stated explicitly in the material. Avoid multi-step inference or trick wording.",
	domain.DifficultyMedium: "Questions should require understanding and basic application of the concepts in the material, not just recall.",
	domain.DifficultyHard:   "Questions should demand analysis and synthesis across multiple parts of the material, with nuanced distinctions and strong distractors.",
}

var formatGuidance = map[domain.Format]string{
	domain.FormatMCQ:   "Every question must be multiple-choice with exactly 4 answer options, only one of which is correct.",
	domain.FormatShort: "Every question must be answerable in one to three sentences. Do not provide answer options.",
	domain.FormatLong:  "Every question must invite an extended, essay-style answer of several paragraphs. Do not provide answer options.",
}

// Build renders the full instruction string for a generation request. The
// guidance tables fall back to medium difficulty and mcq format for
// unrecognized values; this never fails. The material is appended last,
// clearly delimited, so large material cannot override the instruction
// preamble.
func Build(req domain.GenerationRequest) string {
	difficulty := req.Difficulty
	if _, ok := difficultyGuidance[difficulty]; !ok {
		difficulty = domain.DifficultyMedium
	}
	format := req.Format
	if _, ok := formatGuidance[format]; !ok {
		format = domain.FormatMCQ
	}

	var b strings.Builder

	b.WriteString("You are an expert educational assessor. Generate assessment questions from the course material below.\n\n")

	if req.QuestionCount != nil {
		b.WriteString(fmt.Sprintf("Generate exactly %d questions.\n", *req.QuestionCount))
	} else {
		b.WriteString("Generate a well-structured set of questions covering the material; choose a sensible count.\n")
	}

	b.WriteString(fmt.Sprintf("Difficulty: %s. %s\n", difficulty, difficultyGuidance[difficulty]))
	b.WriteString(fmt.Sprintf("Format: %s. %s\n\n", format, formatGuidance[format]))

	b.WriteString("Return a single JSON object with a \"questions\" array. Each question object must have exactly these fields and no others:\n")
	b.WriteString("- \"prompt\": the question text, as a string\n")
	b.WriteString("- \"type\": one of \"mcq\", \"short\", \"long\"\n")
	b.WriteString("- \"difficulty\": one of \"easy\", \"medium\", \"hard\"\n")
	b.WriteString("- \"answer\": the correct or model answer, as a string\n")
	b.WriteString("- \"options\": an array of strings; it must be non-empty only for \"mcq\" questions and an empty array otherwise\n\n")
	b.WriteString("CRITICAL: the output must be machine-parseable JSON matching this shape exactly, with no surrounding commentary, markdown, or code fences.\n\n")

	b.WriteString("--- COURSE MATERIAL START ---\n")
	b.WriteString(req.Material)
	b.WriteString("\n--- COURSE MATERIAL END ---\n")

	return b.String()
}
