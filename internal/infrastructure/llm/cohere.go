package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"curator/internal/config"
	"curator/internal/ports"
)

// CohereClient implements ports.CompletionClient on the Cohere Chat API.
type CohereClient struct {
	client      *cohereclient.Client
	model       string
	temperature float64
}

var _ ports.CompletionClient = (*CohereClient)(nil)

// NewCohereClient builds a client from configuration.
func NewCohereClient(cfg config.CohereConfig) *CohereClient {
	httpClient := &http.Client{Timeout: 60 * time.Second}
	return &CohereClient{
		client: cohereclient.NewClient(
			cohereclient.WithToken(cfg.APIKey),
			cohereclient.WithHTTPClient(httpClient),
		),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Complete sends the prompt pair as a single-turn chat request.
func (c *CohereClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Model:       &c.model,
		Preamble:    &systemPrompt,
		Message:     userPrompt,
		Temperature: &c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat: %w", err)
	}

	return resp.Text, nil
}
