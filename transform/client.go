package transform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Backend sends a prompt to a model and returns the raw completion text.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client builds prompts, calls a Backend and parses the response.
type Client struct {
	backend Backend
	logger  *slog.Logger
}

// NewClient creates a Client. A nil logger uses slog.Default.
func NewClient(backend Backend, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{backend: backend, logger: logger}
}

// Transform generates a component from o. The markup is sanitized first.
func (c *Client) Transform(ctx context.Context, o Options) (*Result, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	o.HTML = Sanitize(o.HTML)
	prompt := BuildPrompt(o)
	c.logger.Debug("transform: prompting", "framework", o.Framework, "styling", o.Styling, "prompt_bytes", len(prompt))

	resp, err := c.backend.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	if strings.TrimSpace(resp) == "" {
		return nil, errors.New("transform: empty response")
	}
	res := ParseResponse(resp, o)
	c.logger.Info("transform: done", "filename", res.Filename, "code_bytes", len(res.Code), "has_styles", res.Styles != "")
	return &res, nil
}

// CLIBackend runs a prompt-mode CLI, `<command> -p <prompt>`, and reads the
// completion from stdout.
type CLIBackend struct {
	Command string // default "claude"
	Args    []string
}

func (b *CLIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	command := b.Command
	if command == "" {
		command = "claude"
	}
	args := append(append([]string{}, b.Args...), "-p", prompt)
	cmd := exec.CommandContext(ctx, command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("cli %s: %w: %s", command, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// ChatClient is the subset of *openai.Client the OpenAI backend needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIBackend calls any OpenAI-compatible chat completion endpoint.
type OpenAIBackend struct {
	Client ChatClient
	Model  string
}

// NewOpenAIBackend builds a backend from an API key and optional base URL.
func NewOpenAIBackend(apiKey, baseURL, model string) *OpenAIBackend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIBackend{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
