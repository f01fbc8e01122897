package display

import (
	"encoding/json"
	"math"

	"amplify/internal/optimizer"
)

type jsonOriginal struct {
	Tweet      string             `json:"tweet"`
	CharCount  int                `json:"char_count"`
	Lang       string             `json:"lang"`
	Scores     map[string]float64 `json:"scores"`
	Categories map[string]float64 `json:"categories"`
	Overall    float64            `json:"overall_score"`
}

type jsonVariation struct {
	Tweet           string             `json:"tweet"`
	Strategy        string             `json:"strategy"`
	CharCount       int                `json:"char_count"`
	TargetedSignals []string           `json:"targeted_signals"`
	Scores          map[string]float64 `json:"scores"`
	MediaSuggestion string             `json:"media_suggestion,omitempty"`
	Explanation     string             `json:"explanation,omitempty"`
	ThreadTweets    []string           `json:"thread_tweets,omitempty"`
	Overall         float64            `json:"overall_score"`
	OverallChange   float64            `json:"overall_change"`
	Categories      map[string]float64 `json:"category_scores"`
}

type jsonResult struct {
	Original   jsonOriginal    `json:"original"`
	Variations []jsonVariation `json:"variations"`
	Analysis   string          `json:"analysis,omitempty"`
}

// RenderJSON serializes a full optimization result for -json output.
// Category scores come out on the 0-100 scale reports use.
func RenderJSON(tweet string, res *optimizer.Result) (string, error) {
	out := jsonResult{
		Original: jsonOriginal{
			Tweet:      tweet,
			CharCount:  res.Features.CharCount,
			Lang:       res.Features.Lang,
			Scores:     res.Original.Signals.Strings(),
			Categories: scaleCategories(res.Original.Categories),
			Overall:    res.Original.Overall,
		},
		Analysis:   res.Analysis,
		Variations: make([]jsonVariation, 0, len(res.Variations)),
	}
	for _, v := range res.Variations {
		out.Variations = append(out.Variations, jsonVariation{
			Tweet:           v.Tweet,
			Strategy:        v.Strategy,
			CharCount:       v.CharCount,
			TargetedSignals: v.TargetedSignals,
			Scores:          v.Comparison.Optimized.Signals.Strings(),
			MediaSuggestion: v.MediaSuggestion,
			Explanation:     v.Explanation,
			ThreadTweets:    v.ThreadTweets,
			Overall:         v.Comparison.Optimized.Overall,
			OverallChange:   v.Comparison.OverallChange,
			Categories:      scaleCategories(v.Comparison.Optimized.Categories),
		})
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scaleCategories(cats map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(cats))
	for k, v := range cats {
		out[k] = math.Round(v*1000) / 10
	}
	return out
}
