package service

import (
	"context"
	"math"

	"icebreak/internal/cache"
	"icebreak/internal/model"
)

// HistoryService reads and edits the per-client history lists
type HistoryService struct {
	cache cache.HistoryCache
}

// NewHistoryService creates a new history service
func NewHistoryService(c cache.HistoryCache) *HistoryService {
	return &HistoryService{cache: c}
}

func (s *HistoryService) ListTopics(ctx context.Context, clientID string) ([]model.TopicHistoryItem, error) {
	return s.cache.ListTopics(ctx, clientID)
}

func (s *HistoryService) ClearTopics(ctx context.Context, clientID string) error {
	return s.cache.ClearTopics(ctx, clientID)
}

func (s *HistoryService) DeleteTopics(ctx context.Context, clientID, id string) error {
	ok, err := s.cache.DeleteTopics(ctx, clientID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SelectTopic marks which generated topic the user went with
func (s *HistoryService) SelectTopic(ctx context.Context, clientID, id string, topic *model.IcebreakerTopic) error {
	ok, err := s.cache.SelectTopic(ctx, clientID, id, topic)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *HistoryService) ListConfidence(ctx context.Context, clientID string) ([]model.ConfidenceHistoryItem, error) {
	return s.cache.ListConfidence(ctx, clientID)
}

func (s *HistoryService) ClearConfidence(ctx context.Context, clientID string) error {
	return s.cache.ClearConfidence(ctx, clientID)
}

func (s *HistoryService) DeleteConfidence(ctx context.Context, clientID, id string) error {
	ok, err := s.cache.DeleteConfidence(ctx, clientID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Stats summarizes both history lists
func (s *HistoryService) Stats(ctx context.Context, clientID string) (*model.HistoryStats, error) {
	topics, err := s.cache.ListTopics(ctx, clientID)
	if err != nil {
		return nil, err
	}
	scores, err := s.cache.ListConfidence(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &model.HistoryStats{
		Topics:     topicStats(topics),
		Confidence: confidenceStats(scores),
	}, nil
}

func topicStats(items []model.TopicHistoryItem) model.TopicStats {
	stats := model.TopicStats{TotalGenerated: len(items)}
	for _, item := range items {
		stats.TotalTopics += len(item.Topics)
		if item.SelectedTopic != nil {
			stats.SelectedCount++
		}
		switch item.Style {
		case model.StyleHumorous:
			stats.StyleBreakdown.Humorous++
		case model.StyleSincere:
			stats.StyleBreakdown.Sincere++
		case model.StyleCurious:
			stats.StyleBreakdown.Curious++
		}
	}
	return stats
}

func confidenceStats(items []model.ConfidenceHistoryItem) model.ConfidenceStats {
	stats := model.ConfidenceStats{TotalEvaluations: len(items)}
	if len(items) == 0 {
		return stats
	}
	sum := 0
	for _, item := range items {
		score := item.Result.FinalScore
		sum += score
		if score >= 70 {
			stats.HighConfidenceCount++
		}
		if score < 50 {
			stats.LowConfidenceCount++
		}
	}
	stats.AverageScore = int(math.Round(float64(sum) / float64(len(items))))
	return stats
}
