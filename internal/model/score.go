package model

// ScoreMode tells whether semantic scoring contributed to a result
type ScoreMode string

const (
	ModeClientOnly ScoreMode = "client-only"
	ModeFull       ScoreMode = "full"
)

// Valid reports whether m is a known scoring mode
func (m ScoreMode) Valid() bool {
	return m == ModeClientOnly || m == ModeFull
}

// ConfidenceTier buckets a final score
type ConfidenceTier string

const (
	TierLow      ConfidenceTier = "low"
	TierMedium   ConfidenceTier = "medium"
	TierHigh     ConfidenceTier = "high"
	TierVeryHigh ConfidenceTier = "very-high"
)

// ClientScoreResult is the output of the local pattern scorer
type ClientScoreResult struct {
	TotalScore   int      `json:"totalScore"`   // 0-100, 40% length + 60% pattern
	LengthScore  int      `json:"lengthScore"`  // 0-100
	PatternScore int      `json:"patternScore"` // 0-100
	Violations   []string `json:"violations"`
	Positives    []string `json:"positives"`
	Feedback     string   `json:"feedback"`
}

// SemanticScoreResponse is the LLM's assessment of a message
type SemanticScoreResponse struct {
	Sincerity   float64  `json:"sincerity"`
	Creativity  float64  `json:"creativity"`
	Relevance   float64  `json:"relevance"` // fit with the target's interests
	SuccessRate float64  `json:"successRate"`
	Feedback    []string `json:"feedback"`
	Strengths   []string `json:"strengths"`
}

// SemanticScoreRequest carries the message and optional context about the recipient
type SemanticScoreRequest struct {
	Message         string   `json:"message"`
	TargetInterests []string `json:"targetInterests,omitempty"`
	TargetProfile   string   `json:"targetProfile,omitempty"`
}

// ConfidenceScoreRequest is the request body for POST /v1/confidence-score
type ConfidenceScoreRequest struct {
	Message         string    `json:"message"`
	TargetInterests []string  `json:"targetInterests,omitempty"`
	TargetProfile   string    `json:"targetProfile,omitempty"`
	Mode            ScoreMode `json:"mode,omitempty"` // defaults to full
}

// ConfidenceScoreResult is the aggregated confidence score
type ConfidenceScoreResult struct {
	Mode           ScoreMode              `json:"mode"`
	ClientScore    ClientScoreResult      `json:"clientScore"`
	SemanticScore  *SemanticScoreResponse `json:"semanticScore,omitempty"`
	FinalScore     int                    `json:"finalScore"`
	ConfidenceTier ConfidenceTier         `json:"confidence"`
	Recommendation string                 `json:"recommendation"`
}
