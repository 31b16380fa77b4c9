package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const ProviderGemini = "Gemini"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	models contentGenerator
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &GeminiClient{models: gc.Models, model: model}, nil
}

func (c *GeminiClient) Provider() string { return ProviderGemini }

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyGemini(err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

func classifyGemini(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return newError(ProviderGemini, kindFromStatus(apiErr.Code), err)
	}
	if kind, ok := classifyTransport(err); ok {
		return newError(ProviderGemini, kind, err)
	}
	return newError(ProviderGemini, KindUnknown, err)
}
