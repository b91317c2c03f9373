package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Rule is the rate limit applied to requests matching a path and method.
// A Path ending in "/" matches by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int           // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Allowlist       map[string]bool
	Denylist        map[string]bool
	Rules           []Rule
}

// SetDefaults registers the rate limit keys on v so they can be overridden
// from the environment (RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT, ...).
func SetDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_default_limit", 600)
	v.SetDefault("rate_limit_default_window", time.Minute)
	v.SetDefault("rate_limit_generate_limit", 60)
	v.SetDefault("rate_limit_generate_window", time.Hour)
	v.SetDefault("rate_limit_generate_burst", 5)
	v.SetDefault("rate_limit_cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit_allowlist", "")
	v.SetDefault("rate_limit_denylist", "")
}

// LoadConfig builds a Config from the keys registered by SetDefaults.
func LoadConfig(v *viper.Viper) *Config {
	if !v.GetBool("rate_limit_enabled") {
		return &Config{Enabled: false}
	}

	generate := Rule{
		Limit:  v.GetInt("rate_limit_generate_limit"),
		Window: v.GetDuration("rate_limit_generate_window"),
		Burst:  v.GetInt("rate_limit_generate_burst"),
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    v.GetInt("rate_limit_default_limit"),
		DefaultWindow:   v.GetDuration("rate_limit_default_window"),
		CleanupInterval: v.GetDuration("rate_limit_cleanup_interval"),
		Allowlist:       parseIPList(v.GetString("rate_limit_allowlist")),
		Denylist:        parseIPList(v.GetString("rate_limit_denylist")),
		Rules:           GenerationRules(generate),
	}
}

// GenerationRules applies the given limits to both endpoints that end in an upstream model call.
func GenerationRules(limits Rule) []Rule {
	rules := make([]Rule, 0, 2)
	for _, path := range []string{"/api/qwen", "/api/recommend"} {
		r := limits
		r.Path = path
		r.Method = "POST"
		rules = append(rules, r)
	}
	return rules
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
