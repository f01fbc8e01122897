package display

import (
	"encoding/json"
	"strings"
	"testing"

	"amplify/internal/analyzer"
	"amplify/internal/config"
	"amplify/internal/llm"
	"amplify/internal/optimizer"
	"amplify/internal/scorer"
)

func sampleResult(t *testing.T) (string, *optimizer.Result) {
	t.Helper()
	sc := config.Default().Scoring
	tweet := "we shipped a thing"
	f := analyzer.Analyze(tweet, false)

	optimized := scorer.Estimate(analyzer.Analyze(
		"Most launches fail quietly. Ours didn't. Here's what we shipped and why it matters. What would you build with it?", false))
	comp, err := scorer.CompareStrict(f, optimized, sc)
	if err != nil {
		t.Fatal(err)
	}
	return tweet, &optimizer.Result{
		Features: f,
		Original: scorer.Score(f, sc),
		Analysis: "Original lacked a hook.",
		Variations: []optimizer.VariationResult{{
			Variation: llm.Variation{
				Tweet:    "Most launches fail quietly. Ours didn't.",
				Strategy: "Curiosity Hook",
			},
			Comparison: comp,
		}},
	}
}

func TestFullRender(t *testing.T) {
	tweet, res := sampleResult(t)
	out := New(config.DisplayConfig{}).Full(tweet, res, false)
	for _, want := range []string{
		"X ALGORITHM TWEET OPTIMIZER",
		"Original Tweet",
		"Variation 1: \"Curiosity Hook\"",
		"Signal Changes:",
		"Category Compatibility:",
		"Summary Comparison:",
		"Analysis: Original lacked a hook.",
		blockFull,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q", want)
		}
	}
}

func TestTopSignalsTrimmed(t *testing.T) {
	tweet, res := sampleResult(t)
	r := New(config.DisplayConfig{TopSignals: 4})
	out := r.Original(tweet, res.Features, res.Original, false)
	// 4 slots, negatives always ranked first.
	if !strings.Contains(out, "not_interested_score") {
		t.Fatal("negative signals must always show")
	}
	if strings.Contains(out, "quoted_click_score") {
		t.Fatal("low-rank signal should be trimmed")
	}
	verbose := r.Original(tweet, res.Features, res.Original, true)
	if !strings.Contains(verbose, "quoted_click_score") {
		t.Fatal("verbose must show every signal")
	}
}

func TestChangeArrows(t *testing.T) {
	cases := []struct {
		pct  float64
		neg  bool
		want string
	}{
		{350, false, "▲▲▲▲"},
		{120, false, "▲▲▲"},
		{60, false, "▲▲"},
		{10, false, "▲"},
		{0, false, ""},
		{-60, false, "▼▼"},
		{-60, true, "▼▼ (improved)"},
		{-10, true, "▼ (improved)"},
		{60, true, "▲▲ (worse)"},
	}
	for _, c := range cases {
		if got := changeArrows(c.pct, c.neg); got != c.want {
			t.Fatalf("changeArrows(%v,%v) = %q want %q", c.pct, c.neg, got, c.want)
		}
	}
}

func TestBarWidth(t *testing.T) {
	b := bar(0.5, 20)
	if strings.Count(b, blockFull) != 10 || strings.Count(b, blockDim) != 10 {
		t.Fatalf("bar = %q", b)
	}
	if bar(2.0, 10) != strings.Repeat(blockFull, 10) {
		t.Fatal("bar must clamp")
	}
}

func TestRenderJSON(t *testing.T) {
	tweet, res := sampleResult(t)
	out, err := RenderJSON(tweet, res)
	if err != nil {
		t.Fatal(err)
	}
	var parsed struct {
		Original struct {
			Overall float64            `json:"overall_score"`
			Scores  map[string]float64 `json:"scores"`
		} `json:"original"`
		Variations []struct {
			Overall    float64            `json:"overall_score"`
			Categories map[string]float64 `json:"category_scores"`
		} `json:"variations"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatal(err)
	}
	if len(parsed.Original.Scores) != 19 {
		t.Fatalf("original scores = %d", len(parsed.Original.Scores))
	}
	if len(parsed.Variations) != 1 {
		t.Fatalf("variations = %d", len(parsed.Variations))
	}
	for cat, v := range parsed.Variations[0].Categories {
		if v < 0 || v > 100 {
			t.Fatalf("category %s out of 0-100 range: %f", cat, v)
		}
	}
}
