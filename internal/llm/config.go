// Package llm holds the generation-model clients used by the advisor:
// the DashScope text-generation endpoint and, for direct CLI runs, Gemini.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderDashScope is Alibaba Cloud DashScope (Qwen models)
	ProviderDashScope Provider = "dashscope"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

const (
	// DefaultTemperature keeps recommendations stable between runs.
	DefaultTemperature = 0.6
	// ResultFormatText asks DashScope for output.text rather than chat messages.
	ResultFormatText = "text"
)

// Config holds the generation parameters for one provider.
type Config struct {
	Provider     Provider
	Model        string
	Temperature  float64
	ResultFormat string
}

// DefaultConfig returns the DashScope configuration used by the relay.
func DefaultConfig() *Config {
	return DefaultDashScopeConfig()
}

// DefaultDashScopeConfig returns the default DashScope configuration
func DefaultDashScopeConfig() *Config {
	return &Config{
		Provider:     ProviderDashScope,
		Model:        "qwen-plus",
		Temperature:  DefaultTemperature,
		ResultFormat: ResultFormatText,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash",
		Temperature: DefaultTemperature,
	}
}

// WithModel returns a copy of the config using model. An empty model keeps the current one.
func (c *Config) WithModel(model string) *Config {
	cp := *c
	if model != "" {
		cp.Model = model
	}
	return &cp
}
