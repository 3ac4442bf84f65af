package generation

import (
	"testing"

	"icebreak/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt(t *testing.T) {
	for _, style := range []model.ConversationStyle{model.StyleHumorous, model.StyleSincere, model.StyleCurious} {
		p := SystemPrompt(style)
		assert.Contains(t, p, styleConfigs[style].tone)
		assert.Contains(t, p, `"在吗"`)
		assert.Contains(t, p, "why_good")
	}
}

func TestUserPrompt(t *testing.T) {
	p := UserPrompt([]string{"徒步", "摄影"}, "周末常去山里", model.StyleCurious)
	assert.Contains(t, p, "徒步、摄影")
	assert.Contains(t, p, "对方资料中提到：周末常去山里")
	assert.Contains(t, p, "好奇探索")

	bare := UserPrompt([]string{"咖啡"}, "", model.StyleHumorous)
	assert.NotContains(t, bare, "对方资料中提到")
	assert.Contains(t, bare, "幽默风趣")
}
