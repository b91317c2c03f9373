package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GenerationRequest is the DashScope text-generation payload.
type GenerationRequest struct {
	Model      string               `json:"model"`
	Input      GenerationInput      `json:"input"`
	Parameters GenerationParameters `json:"parameters"`
}

// GenerationInput carries the prompt.
type GenerationInput struct {
	Prompt string `json:"prompt"`
}

// GenerationParameters controls sampling and output shape.
type GenerationParameters struct {
	Temperature  float64 `json:"temperature"`
	ResultFormat string  `json:"result_format"`
}

// GenerationResponse is the subset of the DashScope reply the advisor reads.
type GenerationResponse struct {
	Output struct {
		Text string `json:"text"`
	} `json:"output"`
	RequestID string `json:"request_id,omitempty"`
}

// NewGenerationRequest builds a request for prompt using the config's parameters.
// An empty model falls back to the config model.
func (c *Config) NewGenerationRequest(model, prompt string) GenerationRequest {
	if model == "" {
		model = c.Model
	}
	return GenerationRequest{
		Model: model,
		Input: GenerationInput{Prompt: prompt},
		Parameters: GenerationParameters{
			Temperature:  c.Temperature,
			ResultFormat: c.ResultFormat,
		},
	}
}

// DashScopeClient sends generation requests to DashScope.
type DashScopeClient struct {
	endpoint   string
	apiKey     string
	config     *Config
	httpClient *http.Client
}

// NewDashScopeClient creates a client for endpoint. A nil httpClient uses a client
// without a timeout; callers bound the call with the request context.
func NewDashScopeClient(endpoint, apiKey string, config *Config, httpClient *http.Client) (*DashScopeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if config == nil {
		config = DefaultDashScopeConfig()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &DashScopeClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		config:     config,
		httpClient: httpClient,
	}, nil
}

// Config returns the generation parameters used by the client.
func (c *DashScopeClient) Config() *Config {
	return c.config
}

// Send issues exactly one upstream call. The response is returned unread whatever
// its status; the caller owns the body.
func (c *DashScopeClient) Send(ctx context.Context, model, prompt string) (*http.Response, error) {
	payload, err := json.Marshal(c.config.NewGenerationRequest(model, prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call DashScope: %w", err)
	}
	return resp, nil
}
