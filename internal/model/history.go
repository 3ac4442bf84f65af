package model

import "time"

// TopicHistoryItem records one generation call
type TopicHistoryItem struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Interests     []string          `json:"interests"`
	Style         ConversationStyle `json:"style"`
	Topics        []IcebreakerTopic `json:"topics"`
	SelectedTopic *IcebreakerTopic  `json:"selectedTopic,omitempty"`
}

// ConfidenceHistoryItem records one confidence scoring call
type ConfidenceHistoryItem struct {
	ID        string                `json:"id"`
	Timestamp time.Time             `json:"timestamp"`
	Message   string                `json:"message"`
	Result    ConfidenceScoreResult `json:"result"`
}

// StyleBreakdown counts generations per style
type StyleBreakdown struct {
	Humorous int `json:"humorous"`
	Sincere  int `json:"sincere"`
	Curious  int `json:"curious"`
}

// TopicStats summarizes the topic history
type TopicStats struct {
	TotalGenerated int            `json:"totalGenerated"`
	TotalTopics    int            `json:"totalTopics"`
	SelectedCount  int            `json:"selectedCount"`
	StyleBreakdown StyleBreakdown `json:"styleBreakdown"`
}

// ConfidenceStats summarizes the confidence history
type ConfidenceStats struct {
	TotalEvaluations    int `json:"totalEvaluations"`
	AverageScore        int `json:"averageScore"`
	HighConfidenceCount int `json:"highConfidenceCount"` // finalScore >= 70
	LowConfidenceCount  int `json:"lowConfidenceCount"`  // finalScore < 50
}

// HistoryStats is returned by GET /v1/history/stats
type HistoryStats struct {
	Topics     TopicStats      `json:"topics"`
	Confidence ConfidenceStats `json:"confidence"`
}
