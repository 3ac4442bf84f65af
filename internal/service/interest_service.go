package service

import (
	"context"
	"regexp"
	"strings"

	"icebreak/internal/llm"
	"icebreak/internal/metrics"
	"icebreak/internal/model"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const extractSystemPrompt = `你是兴趣标签提取助手。请从用户提供的个人简介中提取3-5个核心兴趣标签。

要求：
1. 标签简洁，2-6个字
2. 优先提取具体的兴趣，例如"独立音乐"、"咖啡馆"、"摄影"
3. 也可以提取性格标签，例如"INFP"、"内向"
4. 最多5个标签
5. 直接返回JSON数组，例如：["标签1", "标签2", "标签3"]
6. 不要输出任何解释文字`

var quotedPattern = regexp.MustCompile(`"([^"]+)"`)

// InterestService pulls interest tags out of free-form profile text
type InterestService struct {
	completer llm.ChatCompleter
	model     string
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewInterestService creates a new interest service
func NewInterestService(completer llm.ChatCompleter, model string, logger *zap.Logger, m *metrics.Metrics) *InterestService {
	return &InterestService{
		completer: completer,
		model:     model,
		logger:    logger,
		metrics:   m,
	}
}

// Extract returns at most MaxInterests tags. ErrNoInterests means the model answered but nothing could be parsed.
func (s *InterestService) Extract(ctx context.Context, req *model.ExtractInterestsRequest) (*model.ExtractInterestsResponse, error) {
	if err := ValidateExtractRequest(req); err != nil {
		return nil, err
	}

	resp, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Model:       s.model,
		System:      extractSystemPrompt,
		User:        "请从以下个人简介中提取兴趣标签：\n\n" + req.ProfileText,
		Temperature: 0.3,
		MaxTokens:   100,
	})
	s.metrics.ObserveLLMRequest("extract", err)
	if err != nil {
		return nil, err
	}

	interests := ParseInterests(resp.Text)
	if len(interests) == 0 {
		s.logger.Info("no interests in extraction output", zap.String("payload", resp.Text))
		return nil, ErrNoInterests
	}

	return &model.ExtractInterestsResponse{
		Success:   true,
		Interests: interests,
		Usage: &model.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// ParseInterests reads a JSON array of tags, falling back to every double-quoted substring
func ParseInterests(text string) []string {
	cleaned := llm.StripCodeFences(text)

	var interests []string
	if gjson.Valid(cleaned) && gjson.Parse(cleaned).IsArray() {
		for _, item := range gjson.Parse(cleaned).Array() {
			interests = appendTag(interests, item.String())
		}
	} else {
		for _, m := range quotedPattern.FindAllStringSubmatch(text, -1) {
			interests = appendTag(interests, m[1])
		}
	}

	if len(interests) > MaxInterests {
		interests = interests[:MaxInterests]
	}
	return interests
}

func appendTag(tags []string, tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tags
	}
	return append(tags, tag)
}
