package openai

import (
	"sync"

	"github.com/aerugo/ancestral-vision/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OracleOpenAIClient talks to an OpenAI-compatible API. It implements
// ai.OracleClient for both hosted OpenAI and self-hosted compatible
// endpoints.
//
// An OracleOpenAIClient should be created using NewOracleOpenAIClient.
type OracleOpenAIClient struct {
	chatModel      string
	embeddingModel string
	baseURL        string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	client *openai.Client
}

// NewOracleOpenAIClientParams configures a new OracleOpenAIClient.
// BaseURL may be empty for the hosted OpenAI API.
type NewOracleOpenAIClientParams struct {
	ChatModel      string
	EmbeddingModel string
	BaseURL        string
	APIKey         string
}

// NewOracleOpenAIClient creates a client for the configured endpoint.
// Returns a client with a nil connection when no API key is set; calls
// will fail with a descriptive error.
func NewOracleOpenAIClient(params NewOracleOpenAIClientParams) *OracleOpenAIClient {
	return &OracleOpenAIClient{
		chatModel:      params.ChatModel,
		embeddingModel: params.EmbeddingModel,
		baseURL:        params.BaseURL,
		client:         newOpenaiClient(params.BaseURL, params.APIKey),
	}
}

func newOpenaiClient(baseURL, apiKey string) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)
	return &client
}

func (c *OracleOpenAIClient) modifyMetrics(delta ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics.InputTokens += delta.InputTokens
	c.metrics.OutputTokens += delta.OutputTokens
	c.metrics.TotalTokens += delta.TotalTokens
	c.metrics.DurationMs += delta.DurationMs
	c.metrics.Requests++
}

// ResetMetrics clears the accumulated usage metrics.
func (c *OracleOpenAIClient) ResetMetrics() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics = ai.ModelMetrics{}
}

// GetMetrics returns the accumulated usage metrics.
func (c *OracleOpenAIClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}
