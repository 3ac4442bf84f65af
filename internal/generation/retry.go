package generation

import (
	"context"
	"strings"
	"time"

	"icebreak/internal/config"
	"icebreak/internal/llm"
	"icebreak/internal/metrics"
	"icebreak/internal/model"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	generationTemperature = 0.8
	generationMaxTokens   = 1500
)

// RetryPolicy is the attempt cap and the fixed wait before each retry
type RetryPolicy struct {
	MaxAttempts    int
	Delays         []time.Duration // Delays[i] is waited after failed attempt i+1
	AttemptTimeout time.Duration   // zero leaves the parent context's deadline
}

// DefaultRetryPolicy is three attempts with 1s, 2s, 4s waits and a 30s attempt budget
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		Delays:         []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		AttemptTimeout: 30 * time.Second,
	}
}

// PolicyFromConfig converts the configured generation policy
func PolicyFromConfig(p config.GenerationPolicy) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    p.MaxAttempts,
		Delays:         p.RetryDelays,
		AttemptTimeout: p.AttemptTimeout,
	}
}

// delay returns the wait after the given zero-based failed attempt;
// past the end of the schedule the last delay repeats.
func (p RetryPolicy) delay(attempt int) time.Duration {
	if len(p.Delays) == 0 {
		return 0
	}
	if attempt < len(p.Delays) {
		return p.Delays[attempt]
	}
	return p.Delays[len(p.Delays)-1]
}

// Result is a successful generation
type Result struct {
	Topics []model.IcebreakerTopic
	Usage  llm.Usage
}

// Controller runs generation completions with retries, then validates the output.
// Attempts are strictly sequential. Waits between attempts are not cancellable.
type Controller struct {
	completer llm.ChatCompleter
	model     string
	policy    RetryPolicy
	sleep     func(time.Duration)
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewController creates a controller; an empty model uses the completer's default
func NewController(completer llm.ChatCompleter, model string, policy RetryPolicy, logger *zap.Logger, m *metrics.Metrics) *Controller {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		completer: completer,
		model:     model,
		policy:    policy,
		sleep:     time.Sleep,
		logger:    logger,
		metrics:   m,
	}
}

// SetSleep replaces the wait function (tests record the delays instead of waiting)
func (c *Controller) SetSleep(fn func(time.Duration)) {
	c.sleep = fn
}

// Generate produces validated topics. A validation failure after a successful
// completion is returned as is and does not consume another attempt.
func (c *Controller) Generate(ctx context.Context, systemPrompt, userPrompt string) (*Result, error) {
	resp, err := c.completeWithRetry(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseTopics(resp.Text)
	if err != nil {
		c.logger.Warn("generation response rejected",
			zap.Error(err),
			zap.String("payload", resp.Text),
		)
		return nil, err
	}
	if parsed.Shape.Legacy() {
		c.logger.Warn("topics found in legacy response shape",
			zap.String("shape", string(parsed.Shape)),
		)
	}
	if parsed.Total > MaxTopics {
		c.logger.Debug("truncated extra topics", zap.Int("received", parsed.Total))
	}

	return &Result{Topics: parsed.Topics, Usage: resp.Usage}, nil
}

func (c *Controller) completeWithRetry(ctx context.Context, systemPrompt, userPrompt string) (*llm.CompletionResponse, error) {
	var lastErr error
	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		resp, err := c.attempt(ctx, systemPrompt, userPrompt)
		if err == nil {
			c.metrics.ObserveGenerationAttempt("ok")
			return resp, nil
		}

		lastErr = err
		outcome := "error"
		if errors.Is(err, llm.ErrEmptyResponse) {
			outcome = "empty"
		}
		c.metrics.ObserveGenerationAttempt(outcome)
		c.logger.Warn("generation attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", c.policy.MaxAttempts),
			zap.Error(err),
		)

		if attempt < c.policy.MaxAttempts-1 {
			c.sleep(c.policy.delay(attempt))
		}
	}

	return nil, &Error{
		Kind:   ErrGenerationFailed,
		Detail: "all attempts failed",
		Cause:  lastErr,
	}
}

func (c *Controller) attempt(ctx context.Context, systemPrompt, userPrompt string) (*llm.CompletionResponse, error) {
	if c.policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.policy.AttemptTimeout)
		defer cancel()
	}

	resp, err := c.completer.Complete(ctx, llm.CompletionRequest{
		Model:       c.model,
		System:      systemPrompt,
		User:        userPrompt,
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
		JSON:        true,
	})
	c.metrics.ObserveLLMRequest("generate", err)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Text) == "" {
		return nil, llm.ErrEmptyResponse
	}
	return resp, nil
}
