package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"icebreak/internal/generation"
	"icebreak/internal/llm"
	"icebreak/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const threeTopics = `{"topics": [
	{"category":"徒步","emoji":"⛰️","opener":"看到你也喜欢徒步，我上个月刚走完武功山，你走过最难忘的线路是哪条？","follow_ups":["装备"],"avoid":["不要炫耀"],"sincerity_score":90,"success_rate":85,"why_good":["具体"]},
	{"category":"摄影","emoji":"📷","opener":"你的照片构图好有感觉，我最近在学胶片，你平时用什么相机？","follow_ups":["胶片"],"avoid":["不要问价格"],"sincerity_score":80,"success_rate":75,"why_good":["好奇"]},
	{"category":"咖啡","emoji":"☕","opener":"我周末常去小众咖啡馆发呆，你有私藏的店可以推荐吗？","follow_ups":["手冲"],"avoid":["不要太长"],"sincerity_score":85,"success_rate":80,"why_good":["易回复"]}
]}`

func newIcebreakerService(completer llm.ChatCompleter) *IcebreakerService {
	ctrl := generation.NewController(completer, "", generation.DefaultRetryPolicy(), zap.NewNop(), nil)
	ctrl.SetSleep(func(time.Duration) {})
	return NewIcebreakerService(ctrl, zap.NewNop())
}

func TestIcebreakerService_Generate(t *testing.T) {
	completer := &fakeCompleter{text: threeTopics}
	svc := newIcebreakerService(completer)
	history := newHistoryCache(t)
	svc.SetHistory(history)
	ctx := context.Background()

	got, err := svc.Generate(ctx, "client-1", &model.GenerateRequest{
		Interests:   []string{"徒步", "摄影"},
		ProfileInfo: "周末常去山里",
		Style:       model.StyleSincere,
	})
	require.NoError(t, err)

	assert.True(t, got.Success)
	assert.Len(t, got.Topics, 3)
	assert.Equal(t, &model.Usage{InputTokens: 10, OutputTokens: 20}, got.Usage)
	assert.True(t, strings.Contains(completer.last.User, "徒步、摄影"))

	items, err := history.ListTopics(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.StyleSincere, items[0].Style)
	assert.Len(t, items[0].Topics, 3)
}

func TestIcebreakerService_ValidationSkipsLLM(t *testing.T) {
	completer := &fakeCompleter{text: threeTopics}
	svc := newIcebreakerService(completer)

	_, err := svc.Generate(context.Background(), "", &model.GenerateRequest{Style: model.StyleSincere})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, completer.callCount())
}

func TestIcebreakerService_Failure(t *testing.T) {
	completer := &fakeCompleter{err: errors.Wrap(llm.ErrRateLimited, "status 429")}
	svc := newIcebreakerService(completer)

	_, err := svc.Generate(context.Background(), "", &model.GenerateRequest{
		Interests: []string{"咖啡"},
		Style:     model.StyleHumorous,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, generation.ErrGenerationFailed))
	assert.Equal(t, MsgRateLimited, FriendlyGenerationMessage(err))
	assert.Equal(t, 3, completer.callCount())
}

func TestFriendlyGenerationMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.Wrap(llm.ErrTimeout, "x"), MsgGenerationTimeout},
		{llm.ErrUnauthorized, MsgAPIConfig},
		{llm.ErrNotConfigured, MsgAPIConfig},
		{llm.ErrRateLimited, MsgRateLimited},
		{&generation.Error{Kind: generation.ErrInvalidResponseShape, Detail: "topic 0 missing field: avoid"}, MsgGenerationFailed},
		{&generation.Error{Kind: generation.ErrGenerationFailed, Cause: errors.Wrap(llm.ErrTimeout, "x")}, MsgGenerationTimeout},
		{errors.New("boom"), MsgGenerationFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FriendlyGenerationMessage(tt.err), tt.err.Error())
	}
}
