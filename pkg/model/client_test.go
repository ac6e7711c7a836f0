package model

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oierrors "github.com/odvcencio/interpreter/pkg/errors"
)

func TestChatCompletionSendsWireModelAndAuth(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-02-01", r.URL.Query().Get("api-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ChatResponse{
			ID:      "cmpl-1",
			Choices: []Choice{{Message: Message{Role: "assistant", Content: "hi"}}},
			Usage:   Usage{TotalTokens: 12},
		})
	}))
	defer srv.Close()

	client := NewClient(&Config{APIBase: srv.URL + "/v1/", APIKey: "sk-test", APIVersion: "2024-02-01"})
	resp, err := client.ChatCompletion(context.Background(), ChatRequest{
		Model:    "openai/llama2",
		Messages: []Message{{Role: "user", Content: "hello"}},
		Stream:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Text())
	assert.Equal(t, 12, resp.Usage.TotalTokens)
	assert.Equal(t, "llama2", got.Model)
	assert.False(t, got.Stream)
}

func TestChatCompletionNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(&Config{APIBase: srv.URL})
	_, err := client.ChatCompletion(context.Background(), ChatRequest{Model: "gpt-4"})
	require.Error(t, err)
	assert.True(t, oierrors.IsCode(err, oierrors.ErrCodeModelAPIError))
	assert.Contains(t, err.Error(), "bad key")
}

func TestWireModel(t *testing.T) {
	assert.Equal(t, "gpt-4", WireModel("openai/gpt-4"))
	assert.Equal(t, "deploy", WireModel("Azure/deploy"))
	assert.Equal(t, "ollama/llama2", WireModel("ollama/llama2"))
}

func TestTextEmpty(t *testing.T) {
	var resp *ChatResponse
	assert.Equal(t, "", resp.Text())
	assert.Equal(t, "", (&ChatResponse{}).Text())
}

func TestBudget(t *testing.T) {
	b := &Budget{Limit: Float(0.01)}
	assert.False(t, b.Exceeded())
	assert.False(t, b.Add("gpt-3.5-turbo", Usage{TotalTokens: 1000}))
	assert.True(t, b.Add("openai/gpt-4", Usage{TotalTokens: 1000}))

	unlimited := &Budget{}
	assert.False(t, unlimited.Add("gpt-4", Usage{TotalTokens: 1_000_000}))

	zero := &Budget{Limit: Float(0)}
	assert.False(t, zero.Add("gpt-4", Usage{TotalTokens: 1000}))
}

func TestCostOfUnknownModel(t *testing.T) {
	assert.Zero(t, CostOf("llama2", Usage{TotalTokens: 5000}))
}
