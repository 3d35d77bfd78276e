// Package openai implements the semantic embedding backend against any
// OpenAI-compatible embeddings endpoint. Retries and backoff live here, at
// the adapter boundary; the segmentation core never retries.
package openai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Client is an OpenAI-compatible embeddings client implementing the Embedder interface.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	dimension  int
	client     *http.Client
	maxRetries int
}

// Config configures the OpenAI-compatible embeddings client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates a new embeddings client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		model:      cfg.Model,
		client:     &http.Client{Timeout: timeout},
		maxRetries: 5,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "openai" }

// Prepare is not required for remote embedding; dimension is set lazily on
// the first successful embed.
func (c *Client) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced embedding vectors.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text. Empty text yields a
// zero vector without a network round trip, so cosine against it is defined.
func (c *Client) Embed(text string) ([]float64, error) {
	if text == "" {
		return make([]float64, c.dimension), nil
	}
	for attempt := 0; ; attempt++ {
		vec, err := c.request(text)
		if err == nil {
			if c.dimension == 0 {
				c.dimension = len(vec)
			}
			return vec, nil
		}
		var transient *transientError
		if !errors.As(err, &transient) || attempt >= c.maxRetries {
			return nil, err
		}
		delay := transient.retryAfter
		if delay == 0 {
			delay = backoff(attempt)
		}
		time.Sleep(delay)
	}
}

// transientError marks failures worth retrying, optionally carrying the
// server's Retry-After hint.
type transientError struct {
	err        error
	retryAfter time.Duration
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func (c *Client) request(text string) ([]float64, error) {
	body, err := json.Marshal(map[string]string{
		"input": text,
		"model": c.model,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &transientError{err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &transientError{
			err:        fmt.Errorf("embeddings request failed: %s", resp.Status),
			retryAfter: retryAfterHint(resp),
		}
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("embeddings request failed: %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transientError{err: err}
	}
	return parseEmbedding(payload)
}

// parseEmbedding accepts the OpenAI response shape and the single-vector
// shape some compatible local servers return.
func parseEmbedding(payload []byte) ([]float64, error) {
	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, &transientError{err: fmt.Errorf("decode embeddings response: %w", err)}
	}
	if len(out.Data) > 0 && len(out.Data[0].Embedding) > 0 {
		return out.Data[0].Embedding, nil
	}
	if len(out.Embedding) > 0 {
		return out.Embedding, nil
	}
	return nil, &transientError{err: errors.New("no embedding returned")}
}

func retryAfterHint(resp *http.Response) time.Duration {
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// backoff grows exponentially from 200ms, capped at 5s.
func backoff(attempt int) time.Duration {
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second {
		return 5 * time.Second
	}
	return d
}
