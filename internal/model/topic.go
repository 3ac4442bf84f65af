package model

// ConversationStyle is the requested tone for generated openers
type ConversationStyle string

const (
	StyleHumorous ConversationStyle = "humorous"
	StyleSincere  ConversationStyle = "sincere"
	StyleCurious  ConversationStyle = "curious"
)

// Valid reports whether s is a supported style
func (s ConversationStyle) Valid() bool {
	switch s {
	case StyleHumorous, StyleSincere, StyleCurious:
		return true
	}
	return false
}

// IcebreakerTopic is one generated candidate opener
type IcebreakerTopic struct {
	Category       string   `json:"category"`
	Emoji          string   `json:"emoji"`
	Opener         string   `json:"opener"` // target 50-80 characters
	FollowUps      []string `json:"follow_ups"`
	Avoid          []string `json:"avoid"`
	SincerityScore float64  `json:"sincerity_score"`
	SuccessRate    float64  `json:"success_rate"`
	WhyGood        []string `json:"why_good"`
}

// Usage reports token consumption of an LLM call
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// GenerateRequest is the request body for POST /v1/generate-icebreaker
type GenerateRequest struct {
	Interests   []string          `json:"interests"`
	ProfileInfo string            `json:"profileInfo,omitempty"`
	Style       ConversationStyle `json:"style"`
}

// GenerateResponse is returned by POST /v1/generate-icebreaker
type GenerateResponse struct {
	Success bool              `json:"success"`
	Topics  []IcebreakerTopic `json:"topics,omitempty"`
	Usage   *Usage            `json:"usage,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// ExtractInterestsRequest is the request body for POST /v1/extract-interests
type ExtractInterestsRequest struct {
	ProfileText string `json:"profileText"`
}

// ExtractInterestsResponse is returned by POST /v1/extract-interests
type ExtractInterestsResponse struct {
	Success   bool     `json:"success"`
	Interests []string `json:"interests,omitempty"`
	Usage     *Usage   `json:"usage,omitempty"`
	Error     string   `json:"error,omitempty"`
}
