package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	result, err := ExtractJSON[testPayload](`{"title":"Lake Loop","duration":40}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "Lake Loop", result.Title)
	assert.Equal(t, 40, result.Duration)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"title\":\"Pond Walk\",\"duration\":25}\n```"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pond Walk", result.Title)
}

func TestExtractJSON_SurroundingTextAndBracesInStrings(t *testing.T) {
	raw := "Here you go:\n{\"title\":\"Curly {brace} \\\"trail\\\"\",\"duration\":10}\nEnjoy!"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, `Curly {brace} "trail"`, result.Title)
}

func TestExtractJSON_NoObject(t *testing.T) {
	_, err := ExtractJSON[testPayload]("I cannot help with that.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_Unbalanced(t *testing.T) {
	_, err := ExtractJSON[testPayload](`{"title":"x"`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidatorRejects(t *testing.T) {
	validator := func(p testPayload) error {
		if p.Duration <= 0 {
			return errors.New("duration must be positive")
		}
		return nil
	}
	_, err := ExtractJSON[testPayload](`{"title":"x","duration":0}`, validator)
	require.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "duration must be positive")
}
