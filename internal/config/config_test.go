package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DASHSCOPE_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultDashScopeURL, cfg.DashScopeURL)
	assert.Equal(t, "http://127.0.0.1:8080/api/qwen", cfg.RelayURL)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NotNil(t, cfg.RateLimit)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.RequireDashScopeKey())
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DASHSCOPE_API_KEY", "sk-test")
	t.Setenv("ADVISOR_PORT", "9090")
	t.Setenv("ADVISOR_MODEL", "qwen-max")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.DashScopeAPIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "qwen-max", cfg.Model)
	assert.Equal(t, "http://127.0.0.1:9090/api/qwen", cfg.RelayURL)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.NoError(t, cfg.RequireDashScopeKey())
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := "advisor_port: 7000\nadvisor_relay_url: https://advisor.example.com/api/qwen\nlog_level: debug\n"
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "https://advisor.example.com/api/qwen", cfg.RelayURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:         8080,
			Model:        DefaultModel,
			RelayURL:     "http://127.0.0.1:8080/api/qwen",
			DashScopeURL: DefaultDashScopeURL,
			LogFormat:    "json",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "zero port", mutate: func(c *Config) { c.Port = 0 }, wantErr: "advisor_port"},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "advisor_port"},
		{name: "blank model", mutate: func(c *Config) { c.Model = "  " }, wantErr: "advisor_model"},
		{name: "relative upstream", mutate: func(c *Config) { c.DashScopeURL = "/generation" }, wantErr: "dashscope_url"},
		{name: "bad relay", mutate: func(c *Config) { c.RelayURL = "::" }, wantErr: "advisor_relay_url"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_DoesNotReadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ADVISOR_MODEL", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ADVISOR_MODEL=qwen-turbo\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, cfg.Model, ".env is loaded once by the CLI entry point")
}
