package algorithm

// Derived weight constants, computed once at init and read-only after.
var (
	weightsSum           float64 // sum of positive weights
	negativeWeightsSum   float64 // sum of |negative weights|
	negativeScoresOffset float64 // negativeWeightsSum / weightsSum
)

func init() {
	for _, w := range weights {
		if w > 0 {
			weightsSum += w
		} else {
			negativeWeightsSum += -w
		}
	}
	div := weightsSum
	if div == 0 {
		div = 1
	}
	negativeScoresOffset = negativeWeightsSum / div
}

// WeightsSum returns the sum of all positive catalog weights.
func WeightsSum() float64 { return weightsSum }

// NegativeWeightsSum returns the sum of absolute negative catalog weights.
func NegativeWeightsSum() float64 { return negativeWeightsSum }

// NegativeScoresOffset returns the penalty/reward offset ratio.
func NegativeScoresOffset() float64 { return negativeScoresOffset }

// WeightedScore combines the 19 signal probabilities into a single raw
// ranking score and applies the offset transform.
//
// Video-view eligibility: when the post carries no media, the vqv weight is
// forced to 0 so a structurally meaningless probability can never influence
// ranking of text or photo-only posts.
func WeightedScore(scores ScoreSet, hasMedia bool) float64 {
	total := 0.0
	for _, s := range order {
		w := weights[s]
		if s == VideoView && !hasMedia {
			w = 0
		}
		total += scores.Get(s) * w
	}
	return OffsetScore(total)
}

// OffsetScore rescales a raw weighted score so that negative totals are
// penalized relative to the positive-weight budget while non-negative totals
// get a flat reward offset above the negative floor.
//
//   - weightsSum == 0: max(raw, 0)
//   - raw < 0:  (raw + negativeWeightsSum) / weightsSum * negativeScoresOffset
//   - raw >= 0: raw + negativeScoresOffset
func OffsetScore(raw float64) float64 {
	if weightsSum == 0 {
		if raw < 0 {
			return 0
		}
		return raw
	}
	if raw < 0 {
		return (raw + negativeWeightsSum) / weightsSum * negativeScoresOffset
	}
	return raw + negativeScoresOffset
}

// Default clamp bounds for NormalizeScore.
const (
	MinRawScore = -100.0
	MaxRawScore = 300.0
)

// NormalizeScore maps a raw weighted score to a 0-100 scale.
//
// Approximate: the production score normalizer is not public, so this uses
// offset plus linear clamping. Callers should rely on ordering only.
func NormalizeScore(raw float64) float64 {
	return NormalizeScoreRange(raw, MinRawScore, MaxRawScore)
}

// NormalizeScoreRange is NormalizeScore with explicit clamp bounds.
func NormalizeScoreRange(raw, minScore, maxScore float64) float64 {
	v := OffsetScore(raw)
	if v < minScore {
		v = minScore
	}
	if v > maxScore {
		v = maxScore
	}
	return (v - minScore) / (maxScore - minScore) * 100.0
}
