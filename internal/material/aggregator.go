// Package material assembles pasted text and extracted file texts into the
// single corpus handed to the prompt builder.
package material

import (
	"strings"

	"quizforge/internal/domain"
)

const (
	// MaxChars bounds the corpus size to keep downstream token cost in check.
	MaxChars = 16000

	// TruncationMarker is appended whenever the corpus is cut so the model
	// never sees a silently truncated corpus.
	TruncationMarker = "\n\n[...material truncated at 16000 characters...]"
)

// Aggregate concatenates the pasted text and the extracted file texts, in
// that order, joined by a blank line. It returns a no-material error when
// nothing non-empty was supplied; this runs before the gateway is invoked so
// an empty request never costs an API call.
func Aggregate(pasted string, fileTexts []string) (string, error) {
	pieces := make([]string, 0, len(fileTexts)+1)
	if strings.TrimSpace(pasted) != "" {
		pieces = append(pieces, pasted)
	}
	for _, text := range fileTexts {
		if strings.TrimSpace(text) != "" {
			pieces = append(pieces, text)
		}
	}

	corpus := strings.Join(pieces, "\n\n")
	if strings.TrimSpace(corpus) == "" {
		return "", domain.NewNoMaterialError()
	}

	if runes := []rune(corpus); len(runes) > MaxChars {
		corpus = string(runes[:MaxChars]) + TruncationMarker
	}
	return corpus, nil
}
