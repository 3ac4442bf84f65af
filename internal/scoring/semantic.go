package scoring

import (
	"context"

	"icebreak/internal/llm"
	"icebreak/internal/metrics"
	"icebreak/internal/model"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrSemanticScoringFailed covers every way the semantic evaluation can fail:
// provider errors, timeouts, empty content and unparseable or incomplete JSON.
var ErrSemanticScoringFailed = errors.New("semantic scoring failed")

const (
	semanticTemperature = 0.3
	semanticMaxTokens   = 800
)

var semanticScoreFields = []string{"sincerity", "creativity", "relevance", "successRate"}

// SemanticError wraps the underlying cause of a failed semantic evaluation.
// errors.Is(err, ErrSemanticScoringFailed) holds for every SemanticError.
type SemanticError struct {
	Cause error
}

func (e *SemanticError) Error() string {
	return ErrSemanticScoringFailed.Error() + ": " + e.Cause.Error()
}

func (e *SemanticError) Unwrap() error { return e.Cause }

func (e *SemanticError) Is(target error) bool { return target == ErrSemanticScoringFailed }

// SemanticScorer asks an LLM to rate a message
type SemanticScorer struct {
	completer llm.ChatCompleter
	model     string
	metrics   *metrics.Metrics
}

// NewSemanticScorer creates a scorer; an empty model uses the completer's default
func NewSemanticScorer(completer llm.ChatCompleter, model string, m *metrics.Metrics) *SemanticScorer {
	return &SemanticScorer{
		completer: completer,
		model:     model,
		metrics:   m,
	}
}

// Score runs one completion and parses the assessment. Any failure is a *SemanticError.
func (s *SemanticScorer) Score(ctx context.Context, req model.SemanticScoreRequest) (*model.SemanticScoreResponse, error) {
	resp, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Model:       s.model,
		System:      SemanticSystemPrompt(),
		User:        SemanticUserPrompt(req),
		Temperature: semanticTemperature,
		MaxTokens:   semanticMaxTokens,
		JSON:        true,
	})
	s.metrics.ObserveLLMRequest("score", err)
	if err != nil {
		return nil, &SemanticError{Cause: err}
	}
	if resp.Text == "" {
		return nil, &SemanticError{Cause: llm.ErrEmptyResponse}
	}

	return ParseSemanticScore(resp.Text)
}

// ParseSemanticScore decodes an LLM assessment. The four numeric fields are
// required and clamped to [0,100]; feedback and strengths default to empty.
func ParseSemanticScore(text string) (*model.SemanticScoreResponse, error) {
	text = llm.StripCodeFences(text)
	if !gjson.Valid(text) {
		return nil, &SemanticError{Cause: errors.New("response is not valid JSON")}
	}
	root := gjson.Parse(text)
	if !root.IsObject() {
		return nil, &SemanticError{Cause: errors.New("response is not a JSON object")}
	}

	scores := make(map[string]float64, len(semanticScoreFields))
	for _, field := range semanticScoreFields {
		v := root.Get(field)
		if v.Type != gjson.Number {
			return nil, &SemanticError{Cause: errors.Errorf("missing or non-numeric field %q", field)}
		}
		scores[field] = clampFloat(v.Num)
	}

	return &model.SemanticScoreResponse{
		Sincerity:   scores["sincerity"],
		Creativity:  scores["creativity"],
		Relevance:   scores["relevance"],
		SuccessRate: scores["successRate"],
		Feedback:    stringList(root.Get("feedback")),
		Strengths:   stringList(root.Get("strengths")),
	}, nil
}

// stringList keeps the non-empty items of an array, rendering non-strings as text.
// Anything other than an array yields an empty list.
func stringList(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		if s := item.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
