package service

import (
	"strings"
	"testing"

	"icebreak/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfidenceRequest_MessageLength(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantErr string
	}{
		{"empty", "", "Message is required"},
		{"whitespace", "  \n\t", "Message is required"},
		{"one char", "嗨", ""},
		{"500 ascii", strings.Repeat("a", 500), ""},
		{"500 cjk", strings.Repeat("聊", 500), ""},
		{"501 ascii", strings.Repeat("a", 501), "Message too long (max 500 characters)"},
		{"501 cjk", strings.Repeat("聊", 501), "Message too long (max 500 characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfidenceRequest(&model.ConfidenceScoreRequest{Message: tt.message})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "message", verr.Field)
			assert.Equal(t, tt.wantErr, verr.Message)
		})
	}
}

func TestValidateConfidenceRequest_Mode(t *testing.T) {
	req := &model.ConfidenceScoreRequest{Message: "看到你也喜欢爬山"}
	require.NoError(t, ValidateConfidenceRequest(req))
	assert.Equal(t, model.ModeFull, req.Mode)

	req = &model.ConfidenceScoreRequest{Message: "看到你也喜欢爬山", Mode: model.ModeClientOnly}
	require.NoError(t, ValidateConfidenceRequest(req))
	assert.Equal(t, model.ModeClientOnly, req.Mode)

	err := ValidateConfidenceRequest(&model.ConfidenceScoreRequest{Message: "hi", Mode: "fast"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "mode", verr.Field)
}

func TestValidateGenerateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr string
	}{
		{"ok", model.GenerateRequest{Interests: []string{"咖啡"}, Style: model.StyleSincere}, ""},
		{"five interests", model.GenerateRequest{Interests: []string{"a", "b", "c", "d", "e"}, Style: model.StyleCurious}, ""},
		{"no interests", model.GenerateRequest{Style: model.StyleSincere}, "请至少选择一个兴趣标签"},
		{"six interests", model.GenerateRequest{Interests: []string{"a", "b", "c", "d", "e", "f"}, Style: model.StyleSincere}, "最多选择5个兴趣标签"},
		{"missing style", model.GenerateRequest{Interests: []string{"咖啡"}}, "无效的对话风格"},
		{"unknown style", model.GenerateRequest{Interests: []string{"咖啡"}, Style: "flirty"}, "无效的对话风格"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGenerateRequest(&tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantErr, verr.Message)
		})
	}
}

func TestValidateLibraryRequests(t *testing.T) {
	assert.Error(t, ValidateAddLibraryRequest(&model.AddLibraryRequest{Opener: " "}))
	assert.Error(t, ValidateAddLibraryRequest(&model.AddLibraryRequest{Opener: "hi", SuccessRate: 120}))
	assert.NoError(t, ValidateAddLibraryRequest(&model.AddLibraryRequest{Opener: "hi", SuccessRate: 80}))

	assert.Error(t, ValidateUpdateLibraryRequest(&model.UpdateLibraryRequest{Status: "done"}))
	assert.NoError(t, ValidateUpdateLibraryRequest(&model.UpdateLibraryRequest{Status: model.LibraryInProgress}))
}
