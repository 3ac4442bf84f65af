package scoring

import (
	"context"
	"strings"
	"testing"

	"icebreak/internal/llm"
	"icebreak/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	text string
	err  error
	last llm.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Text: f.text}, nil
}

func TestParseSemanticScore(t *testing.T) {
	got, err := ParseSemanticScore("```json\n{\"sincerity\": 150, \"creativity\": -5, \"relevance\": 72.5, \"successRate\": 90, \"feedback\": [\"多分享细节\"], \"strengths\": \"not a list\"}\n```")
	require.NoError(t, err)

	assert.Equal(t, 100.0, got.Sincerity)
	assert.Equal(t, 0.0, got.Creativity)
	assert.Equal(t, 72.5, got.Relevance)
	assert.Equal(t, 90.0, got.SuccessRate)
	assert.Equal(t, []string{"多分享细节"}, got.Feedback)
	assert.Equal(t, []string{}, got.Strengths)
}

func TestParseSemanticScore_Failures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "I think it is great"},
		{"array", "[1, 2, 3]"},
		{"missing field", `{"sincerity": 80, "creativity": 70, "relevance": 60}`},
		{"string number", `{"sincerity": 80, "creativity": 70, "relevance": 60, "successRate": "85"}`},
		{"null number", `{"sincerity": 80, "creativity": null, "relevance": 60, "successRate": 85}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSemanticScore(tt.text)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrSemanticScoringFailed))
		})
	}
}

func TestSemanticScorer_Score(t *testing.T) {
	fake := &fakeCompleter{text: `{"sincerity": 80, "creativity": 70, "relevance": 60, "successRate": 90, "feedback": [], "strengths": ["真诚"]}`}
	scorer := NewSemanticScorer(fake, "score-model", nil)

	got, err := scorer.Score(context.Background(), model.SemanticScoreRequest{
		Message:         "看到你也喜欢徒步",
		TargetInterests: []string{"徒步", "摄影"},
	})
	require.NoError(t, err)
	assert.Equal(t, 90.0, got.SuccessRate)
	assert.Equal(t, []string{"真诚"}, got.Strengths)

	assert.Equal(t, "score-model", fake.last.Model)
	assert.Equal(t, 0.3, fake.last.Temperature)
	assert.Equal(t, 800, fake.last.MaxTokens)
	assert.True(t, fake.last.JSON)
	assert.Contains(t, fake.last.User, "徒步、摄影")
}

func TestSemanticScorer_ProviderError(t *testing.T) {
	fake := &fakeCompleter{err: errors.Wrap(llm.ErrTimeout, "deadline")}
	scorer := NewSemanticScorer(fake, "", nil)

	_, err := scorer.Score(context.Background(), model.SemanticScoreRequest{Message: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSemanticScoringFailed))
	assert.True(t, errors.Is(err, llm.ErrTimeout))
}

func TestSemanticScorer_EmptyContent(t *testing.T) {
	scorer := NewSemanticScorer(&fakeCompleter{}, "", nil)

	_, err := scorer.Score(context.Background(), model.SemanticScoreRequest{Message: "hi"})
	assert.True(t, errors.Is(err, ErrSemanticScoringFailed))
	assert.True(t, errors.Is(err, llm.ErrEmptyResponse))
}

func TestSemanticUserPrompt(t *testing.T) {
	bare := SemanticUserPrompt(model.SemanticScoreRequest{Message: "你最近在读什么书？"})
	assert.Contains(t, bare, "你最近在读什么书？")
	assert.NotContains(t, bare, "对方兴趣标签")
	assert.NotContains(t, bare, "对方简介")

	full := SemanticUserPrompt(model.SemanticScoreRequest{
		Message:         "你最近在读什么书？",
		TargetInterests: []string{"阅读", "咖啡"},
		TargetProfile:   "INFP，喜欢安静",
	})
	assert.Contains(t, full, "对方兴趣标签：阅读、咖啡")
	assert.Contains(t, full, "对方简介：INFP，喜欢安静")
	assert.True(t, strings.HasSuffix(full, "}"))
}

func TestParseSemanticScore_FeedbackItems(t *testing.T) {
	got, err := ParseSemanticScore(`{"sincerity":80,"creativity":70,"relevance":60,"successRate":85,"feedback":["多问一句","",42,true],"strengths":null}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"多问一句", "42", "true"}, got.Feedback)
	assert.Equal(t, []string{}, got.Strengths)
}
