package enrich

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultGeneratorModel = "gpt-4.1-mini"

// GeneratorConfig configures the chat-completion enrichment adapter.
type GeneratorConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIGenerator produces abstractive titles and summaries through an
// OpenAI-compatible chat completion endpoint. Every call is timeout-bounded;
// errors surface to the enricher, which falls back to the extractive path.
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIGenerator creates the adapter. The API key is required; base URL
// is optional and defaults to the OpenAI endpoint.
func NewOpenAIGenerator(cfg GeneratorConfig) (*OpenAIGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("generator: missing API key")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeneratorModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIGenerator{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}, nil
}

// Title asks the model for a 2-3 word topic title.
func (g *OpenAIGenerator) Title(ctx context.Context, text string) (string, error) {
	return g.complete(ctx,
		"You name podcast topics. Reply with the topic name only, two or three words, no punctuation.",
		"What is the main topic of this transcript excerpt? Answer in exactly 2-3 words:\n\n"+clampInput(text, 500))
}

// Summary asks the model for a short paragraph summarizing the topic.
func (g *OpenAIGenerator) Summary(ctx context.Context, text string) (string, error) {
	return g.complete(ctx,
		"You summarize podcast topics. Reply with one short paragraph under 200 characters, no preamble.",
		"Summarize the core concept discussed in this transcript excerpt:\n\n"+clampInput(text, 800))
}

func (g *OpenAIGenerator) complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:       g.model,
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("generator returned no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("generator returned empty content")
	}
	return content, nil
}
