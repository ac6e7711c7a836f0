package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func wordCount(s string) int { return len(strings.Fields(s)) }

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 2, EstimateTokens("abcdefgh"))
	assert.Equal(t, 3, EstimateTokens("abcdefghi"))
}

func TestTokenBudget(t *testing.T) {
	assert.Equal(t, 0, TokenBudget(nil))
	assert.Equal(t, 0, TokenBudget(NewConfig()))

	cfg := NewConfig()
	cfg.ContextWindow = Int(16000)
	assert.Equal(t, 16000, TokenBudget(cfg))

	cfg.MaxTokens = Int(4096)
	assert.Equal(t, 11904, TokenBudget(cfg))

	cfg.MaxTokens = Int(20000)
	assert.Equal(t, 0, TokenBudget(cfg))
}

func TestTrimMessages(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "one two three"},
		{Role: "assistant", Content: "four five"},
		{Role: "user", Content: "six"},
	}
	// Costs with overhead: 7, 6, 5.

	tests := []struct {
		name   string
		budget int
		want   int
	}{
		{"disabled", 0, 3},
		{"everything fits", 18, 3},
		{"drops oldest", 17, 2},
		{"drops two", 10, 1},
		{"keeps newest even when too big", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimMessages(history, tt.budget, wordCount)
			assert.Len(t, got, tt.want)
			assert.Equal(t, history[len(history)-1], got[len(got)-1])
		})
	}
}
