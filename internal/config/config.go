// Package config loads advisor configuration from the environment and an
// optional YAML config file. The CLI loads .env into the environment first.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/admissions-advisor/internal/server/ratelimit"
	"github.com/spf13/viper"
)

const (
	// DefaultDashScopeURL is the DashScope text-generation endpoint.
	DefaultDashScopeURL = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"
	// DefaultModel is the generation model used when a request names none.
	DefaultModel = "qwen-plus"
	// DefaultPort is the HTTP listen port.
	DefaultPort = 8080
)

// Config represents the advisor configuration.
// Keys map to upper-case environment variables (dashscope_api_key -> DASHSCOPE_API_KEY).
type Config struct {
	Port            int    `mapstructure:"advisor_port"`
	Model           string `mapstructure:"advisor_model"`
	RelayURL        string `mapstructure:"advisor_relay_url"` // where the fetcher reaches the relay
	DashScopeAPIKey string `mapstructure:"dashscope_api_key"`
	DashScopeURL    string `mapstructure:"dashscope_url"`
	GeminiAPIKey    string `mapstructure:"gemini_api_key"`
	GeminiModel     string `mapstructure:"gemini_model"`
	LogLevel        string `mapstructure:"log_level"`
	LogFormat       string `mapstructure:"log_format"`

	RateLimit *ratelimit.Config `mapstructure:"-"`
}

// Load reads configuration. path names an optional YAML file; when empty,
// advisor.yaml is looked up in the working directory and ./configs.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	ratelimit.SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("advisor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.RelayURL == "" {
		cfg.RelayURL = fmt.Sprintf("http://127.0.0.1:%d/api/qwen", cfg.Port)
	}
	cfg.RateLimit = ratelimit.LoadConfig(v)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("advisor_port", DefaultPort)
	v.SetDefault("advisor_model", DefaultModel)
	v.SetDefault("advisor_relay_url", "")
	v.SetDefault("dashscope_api_key", "")
	v.SetDefault("dashscope_url", DefaultDashScopeURL)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Validate checks that the configuration has usable values.
// Credentials are checked separately by the command that needs them.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'advisor_port' must be between 1 and 65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("config error: 'advisor_model' must not be empty")
	}
	if err := validateURL("dashscope_url", c.DashScopeURL); err != nil {
		return err
	}
	if err := validateURL("advisor_relay_url", c.RelayURL); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// RequireDashScopeKey returns an error when the relay credential is missing.
func (c *Config) RequireDashScopeKey() error {
	if c.DashScopeAPIKey == "" {
		return fmt.Errorf("DASHSCOPE_API_KEY environment variable is required")
	}
	return nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config error: '%s' must be an absolute URL, got %q", key, raw)
	}
	return nil
}
