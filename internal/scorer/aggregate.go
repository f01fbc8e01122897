package scorer

import (
	"math"

	"amplify/internal/algorithm"
	"amplify/internal/config"
)

// CategoryScores folds 19 signal scores into 5 category scores in [0,1]
// using the configured membership tables. Safety is inverted so that low
// negative-action probabilities read as high safety.
func CategoryScores(scores algorithm.ScoreSet, sc config.ScoringConfig) map[string]float64 {
	out := make(map[string]float64, len(sc.Categories))
	for name, members := range sc.Categories {
		if len(members) == 0 {
			out[name] = 0
			continue
		}
		total := 0.0
		for _, m := range members {
			total += scores.Get(algorithm.Signal(m))
		}
		mean := total / float64(len(members))
		if name == config.CategorySafety {
			out[name] = clamp01(1.0 - mean)
		} else {
			out[name] = clamp01(mean)
		}
	}
	return out
}

// OverallScore is the weighted category blend scaled to [0,100], rounded
// to one decimal place.
func OverallScore(categories map[string]float64, sc config.ScoringConfig) float64 {
	total := 0.0
	for name, w := range sc.CategoryWeights {
		total += categories[name] * w
	}
	return round1(total * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SignalDelta is the per-signal change between an original and an
// optimized score.
type SignalDelta struct {
	Original  float64 `json:"original"`
	Optimized float64 `json:"optimized"`
	DeltaPct  float64 `json:"delta_pct"`
	Direction string  `json:"direction"` // "improved" or "worse"
}

// Delta computes per-signal percentage change for every catalog signal.
// For negative signals a decrease counts as improvement. A zero delta is
// reported as "worse": no movement is not a win.
func Delta(original, optimized algorithm.ScoreSet) map[algorithm.Signal]SignalDelta {
	out := make(map[algorithm.Signal]SignalDelta, 19)
	for _, sig := range algorithm.Signals() {
		orig := original.Get(sig)
		opt := optimized.Get(sig)
		pct := (opt - orig) / math.Max(orig, 0.01) * 100

		var improved bool
		if algorithm.IsNegative(sig) {
			improved = pct < 0
		} else {
			improved = pct > 0
		}
		dir := "worse"
		if improved {
			dir = "improved"
		}
		out[sig] = SignalDelta{
			Original:  orig,
			Optimized: opt,
			DeltaPct:  round1(pct),
			Direction: dir,
		}
	}
	return out
}

// CategoryDelta is the per-category change, reported on the 0-100 scale.
type CategoryDelta struct {
	Original  float64 `json:"original"`
	Optimized float64 `json:"optimized"`
	Change    float64 `json:"change"`
}

// CategoryDeltas compares two category score maps on the display scale.
func CategoryDeltas(original, optimized map[string]float64) map[string]CategoryDelta {
	out := make(map[string]CategoryDelta, len(original))
	for name, ov := range original {
		pv := optimized[name]
		out[name] = CategoryDelta{
			Original:  round1(ov * 100),
			Optimized: round1(pv * 100),
			Change:    round1((pv - ov) * 100),
		}
	}
	return out
}
