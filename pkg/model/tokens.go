package model

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// messageOverhead approximates the role and separator tokens each chat
// message costs on top of its content.
const messageOverhead = 4

var (
	tokenEncoder *tiktoken.Tiktoken
	encoderOnce  sync.Once
	encoderErr   error
)

func initTokenEncoder() error {
	encoderOnce.Do(func() {
		tokenEncoder, encoderErr = tiktoken.GetEncoding("cl100k_base")
	})
	return encoderErr
}

// CountTokens counts text with the cl100k_base encoding, falling back to
// EstimateTokens when the encoding cannot be loaded.
func CountTokens(text string) int {
	if err := initTokenEncoder(); err != nil {
		return EstimateTokens(text)
	}
	return len(tokenEncoder.Encode(text, nil, nil))
}

// EstimateTokens guesses four characters per token. It never touches the
// network.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// TokenBudget returns how many prompt tokens fit cfg's context window after
// reserving room for the reply, or 0 when the window is unknown.
func TokenBudget(cfg *Config) int {
	if cfg == nil || cfg.ContextWindow == nil {
		return 0
	}
	budget := *cfg.ContextWindow
	if cfg.MaxTokens != nil {
		budget -= *cfg.MaxTokens
	}
	return max(budget, 0)
}

// TrimMessages drops the oldest messages until the rest fit budget tokens
// as counted by count. The newest message is always kept. A budget of 0
// or less disables trimming.
func TrimMessages(messages []Message, budget int, count func(string) int) []Message {
	if budget <= 0 || len(messages) == 0 {
		return messages
	}
	total := 0
	for _, m := range messages {
		total += messageOverhead + count(m.Content)
	}
	start := 0
	for total > budget && start < len(messages)-1 {
		total -= messageOverhead + count(messages[start].Content)
		start++
	}
	return messages[start:]
}
