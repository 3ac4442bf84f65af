package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLengthScore(t *testing.T) {
	tests := []struct {
		name  string
		runes int
		want  int
	}{
		{"empty", 0, 0},
		{"nine", 9, 0},
		{"ten", 10, 30},
		{"nineteen", 19, 30},
		{"twenty", 20, 60},
		{"forty-nine", 49, 60},
		{"fifty", 50, 80},
		{"ninety-nine", 99, 80},
		{"hundred", 100, 70},
		{"one-ninety-nine", 199, 70},
		{"two hundred", 200, 50},
		{"five hundred", 500, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LengthScore(strings.Repeat("聊", tt.runes)))
		})
	}
}

func TestLengthScore_TrimsWhitespace(t *testing.T) {
	msg := "   " + strings.Repeat("聊", 10) + "\n\t "
	assert.Equal(t, 30, LengthScore(msg))
}

func TestScore_ForbiddenGreeting(t *testing.T) {
	s := NewLocalScorer()

	for _, msg := range []string{"你好", "在吗", "Hello", "hi!", "约吗？"} {
		t.Run(msg, func(t *testing.T) {
			got := s.Score(msg)
			assert.LessOrEqual(t, got.PatternScore, 20)
			assert.NotEmpty(t, got.Violations)
		})
	}
}

func TestScore_LengthInPreferredRange(t *testing.T) {
	s := NewLocalScorer()
	msg := strings.Repeat("ab", 30)

	got := s.Score(msg)
	assert.Equal(t, 80, got.LengthScore)
	assert.Equal(t, 50, got.PatternScore)
	assert.Equal(t, 62, got.TotalScore)
}

func TestScore_EmptyMessage(t *testing.T) {
	got := NewLocalScorer().Score("")

	assert.Equal(t, 0, got.LengthScore)
	assert.Equal(t, 50, got.PatternScore)
	assert.Equal(t, 30, got.TotalScore)
	assert.NotNil(t, got.Violations)
	assert.NotNil(t, got.Positives)
	assert.Equal(t, "建议避免无效开场白，多展示真诚和好奇心。", got.Feedback)
}

func TestScore_Idempotent(t *testing.T) {
	s := NewLocalScorer()
	msg := "看到你也喜欢万青，我最近在循环他们的新歌，你觉得哪首最好？"

	assert.Equal(t, s.Score(msg), s.Score(msg))
}

func TestScore_PositivePatterns(t *testing.T) {
	got := NewLocalScorer().Score("看到你也喜欢万青，我最近在循环他们的新歌，你觉得哪首最好？")

	assert.Empty(t, got.Violations)
	assert.Len(t, got.Positives, 3)
	assert.Equal(t, 100, got.PatternScore)
	assert.Equal(t, "这个开场白很有个性！真诚且有趣。", got.Feedback)
}

func TestScore_LowQualityPatterns(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		fire bool
	}{
		{"four emoji on one line", "今天好开心🎵🎸🎹🎺", true},
		{"emoji split across lines", "🎵🎸\n🎹🎺", false},
		{"shouting", "我超级喜欢AMAZING的乐队", true},
		{"five capitals", "我喜欢ABCDE", false},
		{"six repeated characters", "哈哈哈哈哈哈你也喜欢吗", true},
		{"five repeated characters", "哈哈哈哈哈你也喜欢吗", false},
		{"punctuation run", "真的吗？？？", true},
	}

	s := NewLocalScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.msg)
			if tt.fire {
				assert.Equal(t, 35, got.PatternScore)
				assert.Len(t, got.Violations, 1)
			} else {
				assert.Equal(t, 50, got.PatternScore)
				assert.Empty(t, got.Violations)
			}
		})
	}
}

type constMatcher bool

func (m constMatcher) Match(string) bool { return bool(m) }

func TestScore_PatternScoreClamped(t *testing.T) {
	rules := make([]Rule, 0, 3)
	for i := 0; i < 3; i++ {
		rules = append(rules, Rule{Name: "ALWAYS", Kind: KindForbidden, Matcher: constMatcher(true), Delta: forbiddenDelta, Note: "x"})
	}

	got := NewLocalScorerWithRules(rules).Score(strings.Repeat("聊", 60))
	require.Len(t, got.Violations, 3)
	assert.Equal(t, 0, got.PatternScore)
	assert.Equal(t, 32, got.TotalScore)
}

func TestScore_TotalAlwaysInRange(t *testing.T) {
	s := NewLocalScorer()
	inputs := []string{
		"",
		"   ",
		"你好",
		strings.Repeat("!", 500),
		strings.Repeat("😀", 500),
		"看到你也喜欢摄影，我之前也拍过星空，你觉得哪里最好拍？想知道你的器材？",
	}
	for _, in := range inputs {
		got := s.Score(in)
		assert.GreaterOrEqual(t, got.TotalScore, 0)
		assert.LessOrEqual(t, got.TotalScore, 100)
		assert.GreaterOrEqual(t, got.PatternScore, 0)
		assert.LessOrEqual(t, got.PatternScore, 100)
	}
}
