package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

const (
	ProviderPerplexity = "Perplexity"

	perplexityURL = "https://api.perplexity.ai/chat/completions"
)

// PerplexityClient talks to the OpenAI-compatible chat endpoint over plain HTTP.
type PerplexityClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewPerplexityClient(apiKey, model string) *PerplexityClient {
	return &PerplexityClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: perplexityURL,
		client:  &http.Client{},
	}
}

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityRequest struct {
	Model    string              `json:"model"`
	Messages []perplexityMessage `json:"messages"`
}

type perplexityResponse struct {
	Choices []struct {
		Message perplexityMessage `json:"message"`
	} `json:"choices"`
}

func (c *PerplexityClient) Provider() string { return ProviderPerplexity }

func (c *PerplexityClient) Generate(ctx context.Context, prompt string) (string, error) {
	b, err := json.Marshal(perplexityRequest{
		Model:    c.model,
		Messages: []perplexityMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", newError(ProviderPerplexity, KindUnknown, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", newError(ProviderPerplexity, KindUnknown, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if kind, ok := classifyTransport(err); ok {
			return "", newError(ProviderPerplexity, kind, err)
		}
		return "", newError(ProviderPerplexity, KindUnknown, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", newError(ProviderPerplexity, kindFromStatus(resp.StatusCode),
			fmt.Errorf("status %s: %s", resp.Status, bytes.TrimSpace(body)))
	}

	var out perplexityResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", newError(ProviderPerplexity, KindUpstream, fmt.Errorf("decode: %w", err))
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}
