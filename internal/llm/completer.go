package llm

import (
	"context"
	"net"
	"strings"

	"icebreak/internal/config"

	"github.com/pkg/errors"
)

var (
	ErrTimeout       = errors.New("llm request timeout")
	ErrUnauthorized  = errors.New("llm rejected the API key")
	ErrRateLimited   = errors.New("llm rate limit exceeded")
	ErrEmptyResponse = errors.New("empty response from llm")
	ErrNotConfigured = errors.New("llm API key not configured")
)

// CompletionRequest is a single system+user chat turn
type CompletionRequest struct {
	Model       string // empty uses the client's default
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	JSON        bool // ask the provider for a JSON object
}

// Usage reports token consumption
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// CompletionResponse is the provider's text answer
type CompletionResponse struct {
	Text  string
	Usage Usage
}

// ChatCompleter is the only capability the scoring and generation code needs
// from an LLM provider.
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// New returns the provider selected by cfg, or a DisabledClient when no API key is set
func New(cfg *config.AIConfig) ChatCompleter {
	if !cfg.IsEnabled() {
		return DisabledClient{}
	}
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg)
	case config.ProviderGemini:
		return NewGeminiClient(cfg)
	default:
		return NewOpenAIClient(cfg)
	}
}

// DisabledClient fails every call with ErrNotConfigured
type DisabledClient struct{}

// Complete implements ChatCompleter
func (DisabledClient) Complete(context.Context, CompletionRequest) (*CompletionResponse, error) {
	return nil, ErrNotConfigured
}

// Ping sends a tiny prompt to check connectivity and credentials
func Ping(ctx context.Context, c ChatCompleter) (*CompletionResponse, error) {
	resp, err := c.Complete(ctx, CompletionRequest{
		User:        "Say hello in Chinese",
		Temperature: 0.7,
		MaxTokens:   100,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ping failed")
	}
	return resp, nil
}

// StripCodeFences removes a ```json ... ``` wrapper some models put around JSON
func StripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	if nl := strings.IndexByte(cleaned, '\n'); nl >= 0 {
		cleaned = cleaned[nl+1:]
	} else {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errors.Wrapf(ErrTimeout, "%v", err)
	}
	return errors.Wrap(err, "HTTP request failed")
}

func mapHTTPError(status int, body string) error {
	switch {
	case status == 401 || status == 403:
		return errors.Wrapf(ErrUnauthorized, "status %d: %s", status, body)
	case status == 429:
		return errors.Wrapf(ErrRateLimited, "status %d: %s", status, body)
	case status == 408 || status == 504:
		return errors.Wrapf(ErrTimeout, "status %d: %s", status, body)
	default:
		return errors.Errorf("API request failed with status %d: %s", status, body)
	}
}
