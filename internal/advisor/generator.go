package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/admissions-advisor/internal/llm"
)

// DefaultModel is the model named in every relay request.
const DefaultModel = "qwen-plus"

// Generator returns raw model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RelayGenerator calls the relay endpoint over HTTP.
type RelayGenerator struct {
	URL        string
	Model      string
	HTTPClient *http.Client
}

// NewRelayGenerator creates a generator for the relay at url using the default model.
func NewRelayGenerator(url string) *RelayGenerator {
	return &RelayGenerator{URL: url, Model: DefaultModel, HTTPClient: &http.Client{}}
}

type relayRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// Generate posts {model, prompt} to the relay. A non-2xx reply is an *UpstreamError.
func (g *RelayGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.Model
	if model == "" {
		model = DefaultModel
	}
	payload, err := json.Marshal(relayRequest{Model: model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to encode relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(payload))
	if err != nil {
		return "", &APICallError{Message: "failed to create relay request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	client := g.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &APICallError{Message: "failed to reach relay", Cause: err}
	}
	return readGeneration(resp)
}

// DashScopeGenerator calls DashScope directly, bypassing the relay.
type DashScopeGenerator struct {
	Client *llm.DashScopeClient
	Model  string
}

// Generate sends prompt to DashScope and reads output.text.
func (g *DashScopeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.Client.Send(ctx, g.Model, prompt)
	if err != nil {
		return "", &APICallError{Message: "failed to reach DashScope", Cause: err}
	}
	return readGeneration(resp)
}

// readGeneration consumes resp. Non-2xx statuses become *UpstreamError with whatever
// body could be read; a 2xx body that is not JSON yields empty text.
func readGeneration(resp *http.Response) (string, error) {
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := ""
		if readErr == nil {
			text = string(body)
		}
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: text}
	}
	if readErr != nil {
		return "", &APICallError{Message: "failed to read response body", Cause: readErr}
	}
	return OutputText(body), nil
}

// OutputText extracts output.text from a generation response body. Anything
// unexpected yields "".
func OutputText(body []byte) string {
	var data llm.GenerationResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	return data.Output.Text
}
