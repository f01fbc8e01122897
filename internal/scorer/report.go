package scorer

import (
	"fmt"

	"amplify/internal/algorithm"
	"amplify/internal/analyzer"
	"amplify/internal/config"
)

// Report is the complete scoring picture for a single post.
type Report struct {
	Signals    algorithm.ScoreSet `json:"signals"`
	Categories map[string]float64 `json:"categories"`
	Overall    float64            `json:"overall"`
}

// Score builds a full report from structural features.
func Score(f analyzer.Features, sc config.ScoringConfig) Report {
	signals := Estimate(f)
	categories := CategoryScores(signals, sc)
	return Report{
		Signals:    signals,
		Categories: categories,
		Overall:    OverallScore(categories, sc),
	}
}

// Comparison pairs an original post's report against an optimized
// variation's scores, with per-signal and per-category movement.
type Comparison struct {
	Original      Report                           `json:"original"`
	Optimized     Report                           `json:"optimized"`
	Delta         map[algorithm.Signal]SignalDelta `json:"delta"`
	CategoryDelta map[string]CategoryDelta         `json:"category_delta"`
	OverallChange float64                          `json:"overall_change"`
}

// Compare scores the original features and evaluates the optimized signal
// set against them. Missing optimized signals are treated as zero.
func Compare(original analyzer.Features, optimized algorithm.ScoreSet, sc config.ScoringConfig) Comparison {
	orig := Score(original, sc)

	optCategories := CategoryScores(optimized, sc)
	opt := Report{
		Signals:    optimized,
		Categories: optCategories,
		Overall:    OverallScore(optCategories, sc),
	}

	return Comparison{
		Original:      orig,
		Optimized:     opt,
		Delta:         Delta(orig.Signals, optimized),
		CategoryDelta: CategoryDeltas(orig.Categories, optCategories),
		OverallChange: round1(opt.Overall - orig.Overall),
	}
}

// CompareStrict is Compare with a completeness check on the optimized
// scores. Collaborator-produced score sets (LLM output, stored sessions)
// go through here so a silently dropped signal surfaces as an error
// instead of a zero.
func CompareStrict(original analyzer.Features, optimized algorithm.ScoreSet, sc config.ScoringConfig) (Comparison, error) {
	if !optimized.Complete() {
		for _, sig := range algorithm.Signals() {
			if _, ok := optimized[sig]; !ok {
				return Comparison{}, fmt.Errorf("optimized score set incomplete: missing %s", sig)
			}
		}
	}
	return Compare(original, optimized, sc), nil
}
