package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// CompletionClient sends a prompt to the hosted model and returns its text
// output. A failed call returns an error and no partial result; callers are
// expected to degrade to their fallback records rather than abort.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type geminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (CompletionClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Complete implements CompletionClient. Each prompt is attempted exactly
// once; retry policy belongs to the caller, and the pipeline does not retry.
func (g *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0.3)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("no text content in response")
	}

	return text, nil
}
