package config

import (
	"strings"
	"time"
)

// Providers understood by llm.New
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// LLMModels defines which model serves each task
type LLMModels struct {
	// Generation writes the opener candidates (creative, slower is fine)
	Generation string `json:"generation"`

	// Score is the semantic evaluator (low temperature, needs to be fast)
	Score string `json:"score"`

	// Extract pulls interest tags out of profile text
	Extract string `json:"extract"`
}

// GenerationPolicy holds the retry schedule for topic generation
type GenerationPolicy struct {
	MaxAttempts    int             `json:"maxAttempts"`
	RetryDelays    []time.Duration `json:"retryDelays"`
	AttemptTimeout time.Duration   `json:"attemptTimeout"`
}

// AIConfig holds all LLM-related configuration
type AIConfig struct {
	Provider   string           `json:"provider"`
	APIKey     string           `json:"-"`       // Never serialize
	BaseURL    string           `json:"baseUrl"` // empty uses the provider default
	Models     LLMModels        `json:"models"`
	TimeoutMS  int              `json:"timeoutMs"`
	Generation GenerationPolicy `json:"generation"`
}

// DefaultAIConfig returns the built-in defaults, used by tests and as viper defaults
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		Provider: ProviderOpenAI,
		Models: LLMModels{
			Generation: "deepseek-chat",
			Score:      "deepseek-chat",
			Extract:    "deepseek-chat",
		},
		TimeoutMS: 30000,
		Generation: GenerationPolicy{
			MaxAttempts:    3,
			RetryDelays:    []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
			AttemptTimeout: 30 * time.Second,
		},
	}
}

// IsEnabled returns true if the LLM API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout is the HTTP client timeout for provider calls
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func parseDurations(raw string) ([]time.Duration, error) {
	var out []time.Duration
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.ParseDuration(part)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
