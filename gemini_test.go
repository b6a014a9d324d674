package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiSample(t *testing.T) {
	projectID := os.Getenv("GCP_PROJECT_ID")
	if projectID == "" {
		t.Skip("GCP_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()
	src, err := NewGeminiSource(ctx, projectID, "")
	require.NoError(t, err, "create source")

	words, err := src.Sample(ctx, 8)
	require.NoError(t, err, "sample")
	require.NotEmpty(t, words)
	for _, w := range words {
		_, ok := normalizeWord(w)
		assert.True(t, ok, "word %q should be normalized", w)
	}

	// The source must also drive a full generation.
	gen, err := InitGeneration(ctx, src, Options{Words: 6, Rows: 15, Cols: 15})
	require.NoError(t, err)
	t.Logf("Generated from Gemini:\n%s", gen.Grid)
}

func TestNewGeminiSourceNeedsProject(t *testing.T) {
	_, err := NewGeminiSource(context.Background(), "", "")
	assert.Error(t, err)
}

func TestParseGeminiWords(t *testing.T) {
	words, err := parseGeminiWords(`["Apple", " river ", "e-mail", "", "stone"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "river", "stone"}, words)

	_, err = parseGeminiWords("")
	assert.Error(t, err, "empty response")

	_, err = parseGeminiWords("```json\n[\"apple\"]\n```")
	assert.Error(t, err, "markdown fenced response")

	_, err = parseGeminiWords(`["123", "?!"]`)
	assert.Error(t, err, "no usable words")
}
