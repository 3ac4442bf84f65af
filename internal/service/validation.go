package service

import (
	"strings"
	"unicode/utf8"

	"icebreak/internal/model"
)

// Request limits
const (
	MaxMessageLength = 500
	MinInterests     = 1
	MaxInterests     = 5
)

// ValidationError is a malformed request; handlers answer 400 with Message
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidateConfidenceRequest checks a scoring request and fills the default mode.
// Lengths are counted in characters, not bytes.
func ValidateConfidenceRequest(req *model.ConfidenceScoreRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return invalid("message", "Message is required")
	}
	if utf8.RuneCountInString(req.Message) > MaxMessageLength {
		return invalid("message", "Message too long (max 500 characters)")
	}
	if req.Mode == "" {
		req.Mode = model.ModeFull
	}
	if !req.Mode.Valid() {
		return invalid("mode", "Invalid mode (expected client-only or full)")
	}
	return nil
}

// ValidateGenerateRequest checks a topic generation request
func ValidateGenerateRequest(req *model.GenerateRequest) error {
	if len(req.Interests) < MinInterests {
		return invalid("interests", "请至少选择一个兴趣标签")
	}
	if len(req.Interests) > MaxInterests {
		return invalid("interests", "最多选择5个兴趣标签")
	}
	if !req.Style.Valid() {
		return invalid("style", "无效的对话风格")
	}
	return nil
}

// ValidateExtractRequest checks an interest extraction request
func ValidateExtractRequest(req *model.ExtractInterestsRequest) error {
	if strings.TrimSpace(req.ProfileText) == "" {
		return invalid("profileText", "Profile文本不能为空")
	}
	return nil
}

// ValidateAddLibraryRequest checks a library save request
func ValidateAddLibraryRequest(req *model.AddLibraryRequest) error {
	if strings.TrimSpace(req.Opener) == "" {
		return invalid("opener", "开场白不能为空")
	}
	if req.SuccessRate < 0 || req.SuccessRate > 100 {
		return invalid("success_rate", "成功率必须在0-100之间")
	}
	return nil
}

// ValidateUpdateLibraryRequest checks a library status update
func ValidateUpdateLibraryRequest(req *model.UpdateLibraryRequest) error {
	if !req.Status.Valid() {
		return invalid("status", "无效的状态")
	}
	return nil
}
