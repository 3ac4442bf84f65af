package service

import (
	"icebreak/internal/llm"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a history entry or library record does not exist
var ErrNotFound = errors.New("not found")

// ErrNoInterests means the extractor returned nothing usable
var ErrNoInterests = errors.New("no interests extracted")

// User-facing copy for failed generation calls
const (
	MsgGenerationFailed  = "AI生成失败，请稍后重试"
	MsgGenerationTimeout = "请求超时，请检查网络连接后重试"
	MsgAPIConfig         = "API配置错误，请联系管理员"
	MsgRateLimited       = "请求过于频繁，请稍后再试"
	MsgNoInterests       = "无法从profile中提取兴趣标签，请手动输入"
)

// FriendlyGenerationMessage maps an LLM or generation failure to the copy shown to users
func FriendlyGenerationMessage(err error) string {
	switch {
	case errors.Is(err, llm.ErrTimeout):
		return MsgGenerationTimeout
	case errors.Is(err, llm.ErrUnauthorized), errors.Is(err, llm.ErrNotConfigured):
		return MsgAPIConfig
	case errors.Is(err, llm.ErrRateLimited):
		return MsgRateLimited
	default:
		return MsgGenerationFailed
	}
}
