package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"icebreak/internal/model"
)

const basePatternScore = 50

// LocalScorer runs the rule table and the length heuristic over a message.
// It is pure and deterministic; the zero value is not usable, call NewLocalScorer.
type LocalScorer struct {
	rules []Rule
}

// NewLocalScorer creates a scorer with the built-in rules
func NewLocalScorer() *LocalScorer {
	return NewLocalScorerWithRules(DefaultRules())
}

// NewLocalScorerWithRules creates a scorer over a custom rule table
func NewLocalScorerWithRules(rules []Rule) *LocalScorer {
	return &LocalScorer{rules: rules}
}

// Score computes the client-side score for message
func (s *LocalScorer) Score(message string) model.ClientScoreResult {
	lengthScore := LengthScore(message)
	patternScore, violations, positives := s.patternScore(message)

	total := int(math.Round(float64(lengthScore)*0.4 + float64(patternScore)*0.6))

	return model.ClientScoreResult{
		TotalScore:   clampInt(total),
		LengthScore:  lengthScore,
		PatternScore: patternScore,
		Violations:   violations,
		Positives:    positives,
		Feedback:     localFeedback(total),
	}
}

// LengthScore maps the trimmed character count onto a step function peaking at 50..99 characters
func LengthScore(message string) int {
	n := utf8.RuneCountInString(strings.TrimSpace(message))
	switch {
	case n < 10:
		return 0
	case n < 20:
		return 30
	case n < 50:
		return 60
	case n < 100:
		return 80
	case n < 200:
		return 70
	default:
		return 50
	}
}

func (s *LocalScorer) patternScore(message string) (int, []string, []string) {
	score := basePatternScore
	violations := []string{}
	positives := []string{}

	for _, rule := range s.rules {
		if !rule.Matcher.Match(message) {
			continue
		}
		score += rule.Delta
		if rule.Kind == KindPositive {
			positives = append(positives, rule.Note)
		} else {
			violations = append(violations, rule.Note)
		}
	}

	return clampInt(score), violations, positives
}

func localFeedback(total int) string {
	switch {
	case total >= 80:
		return "这个开场白很有个性！真诚且有趣。"
	case total >= 60:
		return "不错的开场白，可以试试加入更多个人经历。"
	case total >= 40:
		return "开场白偏普通，建议结合对方兴趣点具体化。"
	default:
		return "建议避免无效开场白，多展示真诚和好奇心。"
	}
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampFloat(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
