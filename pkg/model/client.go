package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	oierrors "github.com/odvcencio/interpreter/pkg/errors"
)

const (
	openAIBaseURL  = "https://api.openai.com/v1"
	defaultTimeout = 5 * time.Minute
)

// Client talks to an OpenAI-compatible /chat/completions endpoint.
type Client struct {
	apiKey     string
	apiVersion string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client from resolved settings. An empty APIBase means
// the public OpenAI endpoint.
func NewClient(cfg *Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	if base == "" {
		base = openAIBaseURL
	}
	return &Client{
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		baseURL:    base,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetHTTPClient replaces the transport, mainly for tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// WireModel strips routing prefixes the endpoint does not understand.
func WireModel(name string) string {
	for _, p := range []string{"openai/", "azure/"} {
		if strings.HasPrefix(strings.ToLower(name), p) {
			return name[len(p):]
		}
	}
	return name
}

// ChatCompletion executes a non-streaming completion request.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req.Stream = false
	req.Model = WireModel(req.Model)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	if c.apiVersion != "" {
		endpoint += "?api-version=" + url.QueryEscape(c.apiVersion)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, oierrors.Wrap(err, oierrors.ErrCodeModelAPIError, "chat completion request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, oierrors.Newf(oierrors.ErrCodeModelAPIError, "chat completion failed: %s", resp.Status).
			WithContext("body", strings.TrimSpace(string(snippet)))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &chatResp, nil
}
