package main

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

const (
	geminiRegion = "europe-west1"
	geminiModel  = "gemini-2.5-flash"
)

// GeminiSource supplies words generated by Gemini on Vertex AI.
type GeminiSource struct {
	client *genai.Client
	model  string
}

// NewGeminiSource connects to Vertex AI with Application Default
// Credentials. An empty region falls back to geminiRegion.
func NewGeminiSource(ctx context.Context, project, region string) (*GeminiSource, error) {
	if project == "" {
		return nil, fmt.Errorf("gemini source: no GCP project")
	}
	if region == "" {
		region = geminiRegion
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  project,
		Location: region,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini source %s/%s: %w", project, region, err)
	}
	return &GeminiSource{client: client, model: geminiModel}, nil
}

const samplePrompt = `Give me %d different common English words for a crossword puzzle.

Rules:
- Every word is a single lowercase word made only of the letters a to z.
- Between 3 and 9 letters each.
- No proper nouns, abbreviations or plurals.
- Answer ONLY with a JSON array of strings, no comment and no markdown.`

// Sample asks Gemini for n words. The model may repeat itself or return
// fewer words than asked; callers deduplicate.
func (g *GeminiSource) Sample(ctx context.Context, n int) ([]string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: fmt.Sprintf(samplePrompt, n)}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(1)),
			TopP:             genai.Ptr(float32(0.95)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return parseGeminiWords(resp.Text())
}

func parseGeminiWords(text string) ([]string, error) {
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse word list JSON: %w\nraw response: %s", err, text)
	}

	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if w, ok := normalizeWord(w); ok {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no usable words in gemini response: %s", text)
	}
	return words, nil
}
