package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"amplify/internal/algorithm"
)

// Variation is one generated rewrite with the model's self-reported
// signal estimates.
type Variation struct {
	Tweet           string             `json:"tweet"`
	Strategy        string             `json:"strategy"`
	CharCount       int                `json:"char_count"`
	TargetedSignals []string           `json:"targeted_signals"`
	Scores          map[string]float64 `json:"scores"`
	MediaSuggestion string             `json:"media_suggestion"`
	Explanation     string             `json:"explanation"`
	ThreadTweets    []string           `json:"thread_tweets"`
}

// ScoreSet converts the self-reported scores into a validated set.
// Unknown signal names are rejected; values are clamped to [0,1].
func (v Variation) ScoreSet() (algorithm.ScoreSet, error) {
	clamped := make(map[string]float64, len(v.Scores))
	for k, val := range v.Scores {
		if val < 0 {
			val = 0
		}
		if val > 1 {
			val = 1
		}
		clamped[k] = val
	}
	return algorithm.NewScoreSet(clamped)
}

// OptimizeResponse is the full parsed reply for an optimization request.
type OptimizeResponse struct {
	Variations []Variation `json:"variations"`
	Analysis   string      `json:"analysis"`
}

// ParseOptimizeResponse decodes the model's JSON reply. Models sometimes
// wrap JSON in code fences or add prose around it despite instructions,
// so the parser extracts the outermost object before decoding.
func ParseOptimizeResponse(raw string) (*OptimizeResponse, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object in llm response")
	}
	var out OptimizeResponse
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("parse llm response: %w", err)
	}
	if len(out.Variations) == 0 {
		return nil, fmt.Errorf("llm response contains no variations")
	}
	for i, v := range out.Variations {
		if strings.TrimSpace(v.Tweet) == "" {
			return nil, fmt.Errorf("variation %d has empty tweet text", i+1)
		}
	}
	return &out, nil
}

// extractJSON strips markdown fences and surrounding prose, returning the
// outermost {...} object.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
