package model

import (
	"fmt"
	"strings"
)

// DefaultModel is the model used when neither a profile nor a flag picks one.
const DefaultModel = "gpt-4-turbo"

// Config holds language-model settings. Optional knobs are pointers: nil
// means "unset" so later passes can tell a default from an explicit value.
type Config struct {
	Model             string
	Temperature       float64
	SupportsVision    bool
	SupportsFunctions *bool
	ContextWindow     *int
	MaxTokens         *int
	MaxBudget         *float64
	APIBase           string
	APIKey            string
	APIVersion        string
}

// NewConfig returns the library defaults.
func NewConfig() *Config {
	return &Config{Model: DefaultModel}
}

// Snapshot renders the settings as plain values for display and the
// server's /settings endpoint. The API key is masked.
func (c *Config) Snapshot() map[string]any {
	out := map[string]any{
		"model":           c.Model,
		"temperature":     c.Temperature,
		"supports_vision": c.SupportsVision,
		"api_base":        c.APIBase,
		"api_version":     c.APIVersion,
		"api_key":         maskKey(c.APIKey),
	}
	if c.SupportsFunctions != nil {
		out["supports_functions"] = *c.SupportsFunctions
	}
	if c.ContextWindow != nil {
		out["context_window"] = *c.ContextWindow
	}
	if c.MaxTokens != nil {
		out["max_tokens"] = *c.MaxTokens
	}
	if c.MaxBudget != nil {
		out["max_budget"] = *c.MaxBudget
	}
	return out
}

func maskKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return fmt.Sprintf("%s…%s", key[:3], key[len(key)-4:])
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
