package material

import (
	"errors"
	"strings"
	"testing"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_PastedTextPrecedesFilesInUploadOrder(t *testing.T) {
	corpus, err := Aggregate("pasted", []string{"first file", "second file"})
	require.NoError(t, err)
	assert.Equal(t, "pasted\n\nfirst file\n\nsecond file", corpus)
}

func TestAggregate_SkipsEmptyPieces(t *testing.T) {
	corpus, err := Aggregate("", []string{"", "only file", "  \n "})
	require.NoError(t, err)
	assert.Equal(t, "only file", corpus)
}

func TestAggregate_EmptyCorpusFails(t *testing.T) {
	_, err := Aggregate("", nil)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNoMaterial, domainErr.Code)

	_, err = Aggregate("   ", []string{"\t\n"})
	require.Error(t, err)
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNoMaterial, domainErr.Code)
}

func TestAggregate_TruncatesOverLimitWithMarker(t *testing.T) {
	corpus, err := Aggregate(strings.Repeat("a", MaxChars+500), nil)
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(corpus, TruncationMarker))
	body := strings.TrimSuffix(corpus, TruncationMarker)
	assert.Len(t, []rune(body), MaxChars)
}

func TestAggregate_AtLimitUnchanged(t *testing.T) {
	input := strings.Repeat("b", MaxChars)
	corpus, err := Aggregate(input, nil)
	require.NoError(t, err)
	assert.Equal(t, input, corpus)
	assert.NotContains(t, corpus, TruncationMarker)
}

func TestAggregate_TruncationCountsRunesNotBytes(t *testing.T) {
	// Multi-byte runes must not be split by the cut.
	corpus, err := Aggregate(strings.Repeat("é", MaxChars+10), nil)
	require.NoError(t, err)

	body := strings.TrimSuffix(corpus, TruncationMarker)
	runes := []rune(body)
	assert.Len(t, runes, MaxChars)
	for _, r := range runes {
		assert.Equal(t, 'é', r)
	}
}
