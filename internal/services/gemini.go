package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiService issues the single constrained-output model call of the
// pipeline. The client handle is built once at startup and is safe for
// concurrent use across requests.
type GeminiService interface {
	GenerateATSJSON(ctx context.Context, prompt string) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string
	log       *zap.SugaredLogger
}

func NewGeminiService(apiKey, modelName string, log *zap.SugaredLogger) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
		log:       log,
	}, nil
}

// GenerateATSJSON implements GeminiService. Exactly one attempt is made; the
// caller decides what a failure means. The response MIME type is pinned to
// JSON so the model is held to a machine-parseable output.
func (g *geminiService) GenerateATSJSON(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.2)),
		MaxOutputTokens:  2048,
		ResponseMIMEType: "application/json",
	}

	g.log.Infow("invoking model", "model", g.modelName, "prompt_chars", len(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	g.log.Infow("model response received", "chars", len(text))
	return text, nil
}
