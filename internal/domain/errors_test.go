package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(CodeGatewayError, "gateway failed", cause)

	assert.Equal(t, "gateway failed: boom", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	noCause := NewNoMaterialError()
	assert.Equal(t, noCause.Message, noCause.Error())
}

func TestMalformedModelOutputError_CarriesRawText(t *testing.T) {
	raw := `{"questio`
	err := NewMalformedModelOutputError(raw, errors.New("unexpected end of JSON input"))

	assert.Equal(t, CodeMalformedModelOutput, err.Code)
	assert.Equal(t, raw, err.Context["raw_output"])
}

func TestDomainError_MarshalJSONOmitsCause(t *testing.T) {
	err := NewGatewayError(502, "upstream body")
	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, string(CodeGatewayError), decoded["code"])
	assert.NotContains(t, decoded, "Cause")

	details := decoded["details"].(map[string]interface{})
	assert.EqualValues(t, 502, details["status"])
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{NewMissingFieldError("question_count")}
	assert.Contains(t, errs.Error(), "question_count")
	assert.Contains(t, ValidationErrors{}.Error(), "validation failed")
}

func TestNormalizeDifficultyAndFormat(t *testing.T) {
	assert.Equal(t, DifficultyEasy, NormalizeDifficulty("easy"))
	assert.Equal(t, DifficultyMedium, NormalizeDifficulty(""))
	assert.Equal(t, DifficultyMedium, NormalizeDifficulty("impossible"))

	assert.Equal(t, FormatLong, NormalizeFormat("long"))
	assert.Equal(t, FormatMCQ, NormalizeFormat(""))
	assert.Equal(t, FormatMCQ, NormalizeFormat("essay"))
}
