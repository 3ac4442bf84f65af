package scoring

import (
	"strings"

	"icebreak/internal/model"
)

const semanticSystemPrompt = `你是一位资深的社交破冰顾问，负责评估陌生人社交中第一条消息的质量。

评估维度：
1. 真诚度 (sincerity)：是否展示真实的自我，而不是套路化的表达
2. 创意性 (creativity)：表达是否有个性，避免千篇一律
3. 相关性 (relevance)：是否基于对方的兴趣或资料，体现出真正的好奇
4. 成功率 (successRate)：对方愿意回复的概率，综合前三项判断

评分区间：
- 90-100：个性鲜明，真诚分享，精准切中对方兴趣
- 70-89：有一定个性，体现好奇心，基本相关
- 50-69：中规中矩，没有亮点也没有雷区
- 30-49：略显套路，缺乏具体内容
- 0-29：无效开场白，纯套路或令人反感

以下特征直接低于30分：
- 无效问候，例如"你好"、"在吗"、"干嘛呢"
- 空洞赞美，例如"你好漂亮"、"我们很match"
- 低质量提问，例如"有空吗"、"睡了吗"

以下特征可以高于80分：
- 分享真实的个人经历或感受
- 提出有深度、容易接话的问题
- 精准关联对方的兴趣点
- 适度的自嘲或坦诚

只返回JSON，不要输出任何其他文字。`

const semanticResponseSchema = `请返回JSON格式评估，字段如下：
{
  "sincerity": <0-100>,
  "creativity": <0-100>,
  "relevance": <0-100>,
  "successRate": <0-100>,
  "feedback": ["改进建议1", "改进建议2"],
  "strengths": ["优点1", "优点2"]
}`

// SemanticSystemPrompt is the evaluator rubric sent as the system message
func SemanticSystemPrompt() string {
	return semanticSystemPrompt
}

// SemanticUserPrompt renders the message under evaluation plus optional target context
func SemanticUserPrompt(req model.SemanticScoreRequest) string {
	var b strings.Builder
	b.WriteString("请评估以下开场白的质量：\n\n")
	b.WriteString("开场白内容：\n")
	b.WriteString(req.Message)
	b.WriteString("\n\n")

	if len(req.TargetInterests) > 0 {
		b.WriteString("对方兴趣标签：")
		b.WriteString(strings.Join(req.TargetInterests, "、"))
		b.WriteString("\n\n")
	}
	if req.TargetProfile != "" {
		b.WriteString("对方简介：")
		b.WriteString(req.TargetProfile)
		b.WriteString("\n\n")
	}

	b.WriteString(semanticResponseSchema)
	return b.String()
}
