package service

import (
	"context"
	"time"

	"icebreak/internal/cache"
	"icebreak/internal/metrics"
	"icebreak/internal/model"
	"icebreak/internal/scoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConfidenceService scores openers: local rules always, the LLM evaluator in full mode
type ConfidenceService struct {
	local    *scoring.LocalScorer
	semantic *scoring.SemanticScorer
	history  cache.HistoryCache
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewConfidenceService creates a new confidence service
func NewConfidenceService(
	local *scoring.LocalScorer,
	semantic *scoring.SemanticScorer,
	logger *zap.Logger,
	m *metrics.Metrics,
) *ConfidenceService {
	return &ConfidenceService{
		local:    local,
		semantic: semantic,
		logger:   logger,
		metrics:  m,
	}
}

// SetHistory enables recording of scored messages
func (s *ConfidenceService) SetHistory(h cache.HistoryCache) {
	s.history = h
}

// ScoreLocal runs only the rule-based scorer
func (s *ConfidenceService) ScoreLocal(message string) model.ClientScoreResult {
	return s.local.Score(message)
}

// Score validates req and returns the aggregated result. A failed semantic
// evaluation degrades to client-only and is never returned as an error.
func (s *ConfidenceService) Score(ctx context.Context, clientID string, req *model.ConfidenceScoreRequest) (*model.ConfidenceScoreResult, error) {
	if err := ValidateConfidenceRequest(req); err != nil {
		return nil, err
	}

	client := s.local.Score(req.Message)

	var semantic *model.SemanticScoreResponse
	if req.Mode == model.ModeFull {
		resp, err := s.semantic.Score(ctx, model.SemanticScoreRequest{
			Message:         req.Message,
			TargetInterests: req.TargetInterests,
			TargetProfile:   req.TargetProfile,
		})
		if err != nil {
			s.logger.Warn("semantic scoring failed, falling back to client-only",
				zap.String("client_id", clientID),
				zap.Error(err),
			)
			s.metrics.ObserveSemanticFallback()
		} else {
			semantic = resp
		}
	}

	result := scoring.Aggregate(client, semantic)
	s.metrics.ObserveConfidence(string(result.Mode), result.FinalScore)
	s.record(ctx, clientID, req.Message, &result)

	return &result, nil
}

func (s *ConfidenceService) record(ctx context.Context, clientID, message string, result *model.ConfidenceScoreResult) {
	if s.history == nil || clientID == "" {
		return
	}
	item := &model.ConfidenceHistoryItem{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Message:   message,
		Result:    *result,
	}
	if err := s.history.PushConfidence(ctx, clientID, item); err != nil {
		s.logger.Warn("failed to record confidence history",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
	}
}
