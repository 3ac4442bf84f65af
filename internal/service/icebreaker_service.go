package service

import (
	"context"
	"time"

	"icebreak/internal/cache"
	"icebreak/internal/generation"
	"icebreak/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IcebreakerService generates opener topics for a set of interests
type IcebreakerService struct {
	controller *generation.Controller
	history    cache.HistoryCache
	logger     *zap.Logger
}

// NewIcebreakerService creates a new icebreaker service
func NewIcebreakerService(controller *generation.Controller, logger *zap.Logger) *IcebreakerService {
	return &IcebreakerService{
		controller: controller,
		logger:     logger,
	}
}

// SetHistory enables recording of generated topics
func (s *IcebreakerService) SetHistory(h cache.HistoryCache) {
	s.history = h
}

// Generate validates req and runs the retrying generation. Validation errors
// are *ValidationError; every other error satisfies errors.Is(err, generation.ErrGenerationFailed).
func (s *IcebreakerService) Generate(ctx context.Context, clientID string, req *model.GenerateRequest) (*model.GenerateResponse, error) {
	if err := ValidateGenerateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.controller.Generate(ctx,
		generation.SystemPrompt(req.Style),
		generation.UserPrompt(req.Interests, req.ProfileInfo, req.Style),
	)
	if err != nil {
		s.logger.Error("topic generation failed",
			zap.String("client_id", clientID),
			zap.String("style", string(req.Style)),
			zap.Error(err),
		)
		return nil, err
	}

	s.record(ctx, clientID, req, result.Topics)

	return &model.GenerateResponse{
		Success: true,
		Topics:  result.Topics,
		Usage: &model.Usage{
			InputTokens:  result.Usage.PromptTokens,
			OutputTokens: result.Usage.CompletionTokens,
		},
	}, nil
}

func (s *IcebreakerService) record(ctx context.Context, clientID string, req *model.GenerateRequest, topics []model.IcebreakerTopic) {
	if s.history == nil || clientID == "" {
		return
	}
	item := &model.TopicHistoryItem{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Interests: req.Interests,
		Style:     req.Style,
		Topics:    topics,
	}
	if err := s.history.PushTopics(ctx, clientID, item); err != nil {
		s.logger.Warn("failed to record topic history",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
	}
}
