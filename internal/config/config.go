package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the full service configuration
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	RedisURI  string
	History   HistoryConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	AI        *AIConfig
}

// HistoryConfig bounds the ephemeral per-client history
type HistoryConfig struct {
	TTL      time.Duration
	MaxItems int
}

// HistoryEnabled reports whether history and library features are available
func (c *Config) HistoryEnabled() bool {
	return c.RedisURI != ""
}

// CORSConfig holds the CORS response headers
type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// RateLimitConfig limits LLM-backed routes per client
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// Load reads configuration from defaults, an optional file named by
// ICEBREAK_CONFIG, and the environment, in increasing precedence.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	ai := DefaultAIConfig()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("REDIS_URI", "")
	v.SetDefault("HISTORY_TTL", 7*24*time.Hour)
	v.SetDefault("HISTORY_MAX_ITEMS", 50)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Content-Type, Authorization, X-Client-ID")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 30)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("LLM_PROVIDER", ai.Provider)
	v.SetDefault("LLM_BASE_URL", ai.BaseURL)
	v.SetDefault("LLM_MODEL", ai.Models.Generation)
	v.SetDefault("LLM_TIMEOUT_MS", ai.TimeoutMS)
	v.SetDefault("GENERATION_MAX_ATTEMPTS", ai.Generation.MaxAttempts)
	v.SetDefault("GENERATION_RETRY_DELAYS", "1s,2s,4s")
	v.SetDefault("GENERATION_ATTEMPT_TIMEOUT", ai.Generation.AttemptTimeout)

	v.AutomaticEnv()
	// DEEPSEEK_* names are accepted as aliases
	_ = v.BindEnv("LLM_API_KEY", "LLM_API_KEY", "DEEPSEEK_API_KEY")
	_ = v.BindEnv("LLM_BASE_URL", "LLM_BASE_URL", "DEEPSEEK_API_BASE")
	_ = v.BindEnv("ICEBREAK_CONFIG")

	if path := v.GetString("ICEBREAK_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file: %s", path)
		}
	}

	ai.Provider = strings.ToLower(v.GetString("LLM_PROVIDER"))
	ai.APIKey = v.GetString("LLM_API_KEY")
	ai.BaseURL = v.GetString("LLM_BASE_URL")
	ai.TimeoutMS = v.GetInt("LLM_TIMEOUT_MS")
	ai.Models.Generation = v.GetString("LLM_MODEL")
	ai.Models.Score = firstNonEmpty(v.GetString("LLM_SCORE_MODEL"), ai.Models.Generation)
	ai.Models.Extract = firstNonEmpty(v.GetString("LLM_EXTRACT_MODEL"), ai.Models.Generation)
	ai.Generation.MaxAttempts = v.GetInt("GENERATION_MAX_ATTEMPTS")
	ai.Generation.AttemptTimeout = v.GetDuration("GENERATION_ATTEMPT_TIMEOUT")

	delays, err := parseDurations(v.GetString("GENERATION_RETRY_DELAYS"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid GENERATION_RETRY_DELAYS")
	}
	ai.Generation.RetryDelays = delays

	cfg := &Config{
		Port:      v.GetString("PORT"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		RedisURI:  v.GetString("REDIS_URI"),
		History: HistoryConfig{
			TTL:      v.GetDuration("HISTORY_TTL"),
			MaxItems: v.GetInt("HISTORY_MAX_ITEMS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetString("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetString("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		AI: ai,
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

// Validate checks value ranges that would otherwise fail at runtime
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
	default:
		return errors.Errorf("unknown LLM_PROVIDER %q", c.AI.Provider)
	}
	if c.AI.Generation.MaxAttempts < 1 {
		return errors.New("GENERATION_MAX_ATTEMPTS must be at least 1")
	}
	if c.History.MaxItems < 1 {
		return errors.New("HISTORY_MAX_ITEMS must be at least 1")
	}
	if c.RateLimit.RequestsPerMinute < 1 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be at least 1")
	}
	return nil
}

// RedisAddr strips a redis:// scheme, as the deployment passes a URI
func (c *Config) RedisAddr() string {
	return strings.TrimPrefix(c.RedisURI, "redis://")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
