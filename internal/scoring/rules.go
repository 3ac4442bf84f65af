package scoring

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// RuleKind groups rules by their effect on the pattern score
type RuleKind string

const (
	KindForbidden  RuleKind = "forbidden"
	KindLowQuality RuleKind = "low_quality"
	KindPositive   RuleKind = "positive"
)

// Matcher decides whether a rule fires for a message
type Matcher interface {
	Match(text string) bool
}

// Rule is one pattern check with its score effect and note
type Rule struct {
	Name    string
	Kind    RuleKind
	Matcher Matcher
	Delta   int    // added to the pattern score when the rule fires
	Note    string // appended to violations or positives
}

const (
	forbiddenDelta  = -30
	lowQualityDelta = -15
	positiveDelta   = 20
)

// matchTimeout bounds a single regexp2 evaluation; messages are at most 500 characters.
const matchTimeout = 50 * time.Millisecond

type regexMatcher struct {
	re *regexp2.Regexp
}

func mustRegex(pattern string, opts regexp2.RegexOptions) Matcher {
	re := regexp2.MustCompile(pattern, opts)
	re.MatchTimeout = matchTimeout
	return regexMatcher{re: re}
}

// Match treats an evaluation error (timeout) as no match
func (m regexMatcher) Match(text string) bool {
	ok, err := m.re.MatchString(text)
	return err == nil && ok
}

// emojiRunMatcher fires when one line holds at least min pictographs in U+1F300..U+1F9FF.
type emojiRunMatcher struct {
	min int
}

func (m emojiRunMatcher) Match(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		count := 0
		for _, r := range line {
			if r >= 0x1F300 && r <= 0x1F9FF {
				count++
			}
		}
		if count >= m.min {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in rule table, evaluated in order
func DefaultRules() []Rule {
	return []Rule{
		// Forbidden: dead greetings, empty flattery, low-effort questions, blunt propositions
		{
			Name:    "DEAD_GREETING",
			Kind:    KindForbidden,
			Matcher: mustRegex(`^(你好|在吗|干嘛呢|hi|hey|hello)[\s!！?？。.]*$`, regexp2.IgnoreCase),
			Delta:   forbiddenDelta,
			Note:    "使用了无效开场白（如“你好”“在吗”）",
		},
		{
			Name:    "FORMULAIC_GREETING",
			Kind:    KindForbidden,
			Matcher: mustRegex(`^(很高兴认识你|可以聊聊吗|加个好友吧)[\s!！?？。.]*$`, regexp2.None),
			Delta:   forbiddenDelta,
			Note:    "使用了套路化的客套开场",
		},
		{
			Name:    "EMPTY_FLATTERY",
			Kind:    KindForbidden,
			Matcher: mustRegex(`你(真|好|很)(好看|漂亮|帅|美)`, regexp2.None),
			Delta:   forbiddenDelta,
			Note:    "空洞赞美外表，缺乏具体性",
		},
		{
			Name:    "EMPTY_MATCH_CLAIM",
			Kind:    KindForbidden,
			Matcher: mustRegex(`我觉得(我们|你我)很?match`, regexp2.IgnoreCase),
			Delta:   forbiddenDelta,
			Note:    "空洞地声称“很match”",
		},
		{
			Name:    "LOW_EFFORT_QUESTION",
			Kind:    KindForbidden,
			Matcher: mustRegex(`^(有空吗|在干嘛|睡了吗|忙吗)[\s?？]*$`, regexp2.None),
			Delta:   forbiddenDelta,
			Note:    "低质量提问，对方难以接话",
		},
		{
			Name:    "BLUNT_PROPOSITION",
			Kind:    KindForbidden,
			Matcher: mustRegex(`^(约吗|见面吧|出来玩)[\s?？!！]*$`, regexp2.None),
			Delta:   forbiddenDelta,
			Note:    "邀约过于直接",
		},

		// Low quality: noise that makes a message look careless
		{
			Name:    "EXCESSIVE_EMOJI",
			Kind:    KindLowQuality,
			Matcher: emojiRunMatcher{min: 4},
			Delta:   lowQualityDelta,
			Note:    "emoji过多",
		},
		{
			Name:    "SHOUTING",
			Kind:    KindLowQuality,
			Matcher: mustRegex(`[A-Z]{6,}`, regexp2.None),
			Delta:   lowQualityDelta,
			Note:    "连续大写字母过多",
		},
		{
			Name:    "CHARACTER_REPETITION",
			Kind:    KindLowQuality,
			Matcher: mustRegex(`(.)\1{5,}`, regexp2.None),
			Delta:   lowQualityDelta,
			Note:    "重复字符过多",
		},
		{
			Name:    "PUNCTUATION_RUN",
			Kind:    KindLowQuality,
			Matcher: mustRegex(`[!！?？。.]{3,}`, regexp2.None),
			Delta:   lowQualityDelta,
			Note:    "标点符号过多",
		},

		// Positive: shared interest, personal story, deep question, curiosity
		{
			Name:    "SHARED_INTEREST",
			Kind:    KindPositive,
			Matcher: mustRegex(`看到你(也|喜欢|在听|关注).*\S+`, regexp2.None),
			Delta:   positiveDelta,
			Note:    "提到了对方的具体兴趣",
		},
		{
			Name:    "PERSONAL_ANECDOTE",
			Kind:    KindPositive,
			Matcher: mustRegex(`(我|自己)(曾经|最近|之前|也).*[，,]`, regexp2.None),
			Delta:   positiveDelta,
			Note:    "分享了个人经历",
		},
		{
			Name:    "OPEN_QUESTION",
			Kind:    KindPositive,
			Matcher: mustRegex(`你(觉得|认为|怎么看|如何理解).*[?？]`, regexp2.None),
			Delta:   positiveDelta,
			Note:    "提出了有深度的开放式问题",
		},
		{
			Name:    "CURIOSITY",
			Kind:    KindPositive,
			Matcher: mustRegex(`(想知道|好奇|请教|了解一下).*[?？]`, regexp2.None),
			Delta:   positiveDelta,
			Note:    "展示了好奇心",
		},
	}
}
