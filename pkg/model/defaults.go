package model

import "strings"

// defaultRule fills unset settings for models whose name matches.
type defaultRule struct {
	exact         []string
	prefixes      []string
	contextWindow int
	maxTokens     int
	// nil means "functions supported unless the name mentions vision".
	supportsFunctions *bool
}

// Rules are checked in order; the first match wins.
var defaultRules = []defaultRule{
	{
		exact:         []string{"gpt-4", "openai/gpt-4"},
		contextWindow: 6500,
		maxTokens:     4096,
	},
	{
		prefixes:      []string{"gpt-4", "openai/gpt-4"},
		contextWindow: 123000,
		maxTokens:     4096,
	},
	{
		prefixes:          []string{"gpt-3.5-turbo", "openai/gpt-3.5-turbo"},
		contextWindow:     16000,
		maxTokens:         4096,
		supportsFunctions: Bool(true),
	},
}

func (r defaultRule) matches(name string) bool {
	for _, e := range r.exact {
		if name == e {
			return true
		}
	}
	for _, p := range r.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// InferDefaults fills ContextWindow, MaxTokens and SupportsFunctions from
// the model name. Fields that are already set are never touched, and a name
// that matches no rule leaves the config unchanged. Reports whether a rule
// matched.
func InferDefaults(cfg *Config) bool {
	if cfg == nil {
		return false
	}
	for _, rule := range defaultRules {
		if !rule.matches(cfg.Model) {
			continue
		}
		if cfg.ContextWindow == nil {
			cfg.ContextWindow = Int(rule.contextWindow)
		}
		if cfg.MaxTokens == nil {
			cfg.MaxTokens = Int(rule.maxTokens)
		}
		if cfg.SupportsFunctions == nil {
			if rule.supportsFunctions != nil {
				cfg.SupportsFunctions = Bool(*rule.supportsFunctions)
			} else {
				cfg.SupportsFunctions = Bool(!strings.Contains(cfg.Model, "vision"))
			}
		}
		return true
	}
	return false
}

// providerPrefixes are routing prefixes that already tell the client how to
// reach a custom API base.
var providerPrefixes = []string{"openai/", "azure/", "ollama", "jan", "local"}

// NormalizeProvider rewrites the model name when a custom API base is set:
// names without a known provider prefix are routed through the
// OpenAI-compatible client ("openai/" is prepended) and a "jan/" prefix is
// dropped. Without an API base the name is left alone.
func NormalizeProvider(cfg *Config) {
	if cfg == nil || cfg.APIBase == "" {
		return
	}
	lower := strings.ToLower(cfg.Model)
	for _, p := range providerPrefixes {
		if strings.HasPrefix(lower, p) {
			if strings.HasPrefix(lower, "jan/") {
				cfg.Model = cfg.Model[len("jan/"):]
			}
			return
		}
	}
	cfg.Model = "openai/" + cfg.Model
}

// IsLocal reports whether the model is served locally and needs no API key.
func IsLocal(cfg *Config) bool {
	if cfg == nil {
		return false
	}
	lower := strings.ToLower(cfg.Model)
	for _, p := range []string{"ollama", "jan", "local"} {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	base := strings.ToLower(cfg.APIBase)
	return strings.Contains(base, "localhost") || strings.Contains(base, "127.0.0.1")
}
