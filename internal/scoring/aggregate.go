package scoring

import (
	"math"

	"icebreak/internal/model"
)

const (
	clientWeight   = 0.3
	semanticWeight = 0.7
)

// Aggregate combines the local score with an optional semantic assessment.
// With semantic == nil the client total stands alone and the mode is client-only.
func Aggregate(client model.ClientScoreResult, semantic *model.SemanticScoreResponse) model.ConfidenceScoreResult {
	mode := model.ModeClientOnly
	final := client.TotalScore

	if semantic != nil {
		mode = model.ModeFull
		final = int(math.Round(float64(client.TotalScore)*clientWeight + semantic.SuccessRate*semanticWeight))
	}
	final = clampInt(final)

	return model.ConfidenceScoreResult{
		Mode:           mode,
		ClientScore:    client,
		SemanticScore:  semantic,
		FinalScore:     final,
		ConfidenceTier: Tier(final),
		Recommendation: Recommendation(final),
	}
}

// Tier buckets a final score: <50 low, <70 medium, <85 high, else very-high
func Tier(score int) model.ConfidenceTier {
	switch {
	case score >= 85:
		return model.TierVeryHigh
	case score >= 70:
		return model.TierHigh
	case score >= 50:
		return model.TierMedium
	default:
		return model.TierLow
	}
}

// Recommendation returns the send/rewrite advice for a final score
func Recommendation(score int) string {
	switch {
	case score >= 85:
		return "这个开场白很棒！真诚、有创意且切中对方兴趣点。发送吧！"
	case score >= 70:
		return "不错的开场白！可以发送，也可以参考建议进一步优化。"
	case score >= 50:
		return "开场白可用，但建议参考反馈优化后再发送，成功率会更高。"
	default:
		return "建议重新思考开场白。试着分享真实感受，或提出有深度的问题。"
	}
}
