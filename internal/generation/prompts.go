package generation

import (
	"fmt"
	"strings"

	"icebreak/internal/model"
)

// ForbiddenOpeners are listed in the system prompt as openers the model must never produce
var ForbiddenOpeners = []string{
	"你好", "在吗", "干嘛呢", "Hi", "Hey", "Hello",
	"很高兴认识你", "可以聊聊吗", "加个好友吧",
	"你真好看", "你好漂亮", "我觉得我们很match",
}

type styleConfig struct {
	label   string
	tone    string
	example string
}

var styleConfigs = map[model.ConversationStyle]styleConfig{
	model.StyleHumorous: {
		label:   "幽默风趣",
		tone:    "轻松诙谐，可以适当自嘲，可以用emoji但不要过多",
		example: "看到你也在听万青！我最近一直在循环《杀死那个石家庄人》，每次听到“如此生活三十年”都要emo半天😮‍💨 你最喜欢他们哪首？",
	},
	model.StyleSincere: {
		label:   "真诚温暖",
		tone:    "真诚分享个人感受，引起情感共鸣，少用emoji",
		example: "看到你喜欢咖啡馆探店。我周末常常一个人去小众咖啡馆待一下午，看书或者发呆。你有私藏的咖啡馆吗？我最近也发现了一家很棒的。",
	},
	model.StyleCurious: {
		label:   "好奇探索",
		tone:    "展示好奇心和求知欲，提出有深度的问题",
		example: "注意到你是INFP！我最近在研究MBTI，发现INFP通常对艺术和文学很敏感。你觉得准吗？你平时会用什么方式表达创造力？",
	},
}

func quoted(items []string) string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = `"` + s + `"`
	}
	return strings.Join(out, "、")
}

// SystemPrompt renders the generation rules for the given style
func SystemPrompt(style model.ConversationStyle) string {
	cfg, ok := styleConfigs[style]
	if !ok {
		cfg = styleConfigs[model.StyleSincere]
	}

	return fmt.Sprintf(`你是一位社交破冰专家，帮助用户写出给陌生人的第一条个性化消息。

核心规则（必须严格遵守）：

1. 绝对不要使用以下开场白：
   %s

2. 个性化要求：
   - 必须基于对方的具体兴趣标签
   - 必须包含“你自己”的相关经历或观点，让消息有真实感
   - 不能只是“我也喜欢XX”这种空洞表达

3. 消息结构：
   - 开头：找到共同点或好奇点
   - 展开：分享个人经历或提出有趣的问题
   - 结尾：开放式问题，邀请对方回应

4. 风格要求：
   - 语气：%s
   - 长度：50-80字
   - 问题类型：开放式、容易回复，避免是非题
   - 参考示例：%s

5. 评分字段：
   - sincerity_score：真诚度，是否有真实的个人经历或情感表达
   - success_rate：预测对方回复的概率

输出格式：返回包含3个话题的JSON数组，每个话题对象包含：
{
  "category": "话题分类名称，例如“音乐共鸣点”",
  "emoji": "单个emoji",
  "opener": "50-80字的开场白",
  "follow_ups": ["后续话题1", "后续话题2", "后续话题3"],
  "avoid": ["避坑提示1", "避坑提示2"],
  "sincerity_score": 0-100之间的数字,
  "success_rate": 0-100之间的数字,
  "why_good": ["理由1", "理由2", "理由3"]
}

注意：
- 3个话题的切入角度要不同
- opener要自然流畅，像真人在说话
- 避坑提示要具体，例如“不要直接问‘你为什么喜欢XX’”
- follow_ups要能真正延续对话`, quoted(ForbiddenOpeners), cfg.tone, cfg.example)
}

// UserPrompt renders the recipient's interests and optional profile text
func UserPrompt(interests []string, profileInfo string, style model.ConversationStyle) string {
	label := styleConfigs[model.StyleSincere].label
	if cfg, ok := styleConfigs[style]; ok {
		label = cfg.label
	}

	var b strings.Builder
	b.WriteString("请根据以下信息生成3个个性化破冰话题：\n\n")
	b.WriteString("对方的兴趣标签：")
	b.WriteString(strings.Join(interests, "、"))
	if profileInfo != "" {
		b.WriteString("\n\n对方资料中提到：")
		b.WriteString(profileInfo)
	}
	b.WriteString("\n\n期望风格：")
	b.WriteString(label)
	b.WriteString(`

每个开场白都要：
1. 结合对方的具体兴趣
2. 展示你的真实经历或观点
3. 提出容易回复的开放式问题
4. 避免客套话和套路感

直接返回JSON，不要输出任何其他文字。`)
	return b.String()
}
