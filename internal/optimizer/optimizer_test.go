package optimizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"amplify/internal/algorithm"
	"amplify/internal/config"
	"amplify/internal/discovery"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func cannedResponse(tweets ...string) string {
	var scores []string
	for _, s := range algorithm.Signals() {
		v := 0.5
		if algorithm.IsNegative(s) {
			v = 0.05
		}
		scores = append(scores, fmt.Sprintf("%q: %v", string(s), v))
	}
	var variations []string
	for _, tw := range tweets {
		variations = append(variations, fmt.Sprintf(`{
			"tweet": %q,
			"strategy": "Reply Magnet",
			"char_count": %d,
			"targeted_signals": ["reply_score"],
			"scores": {%s},
			"explanation": "Provokes debate."
		}`, tw, len(tw), strings.Join(scores, ",")))
	}
	return fmt.Sprintf(`{"variations": [%s], "analysis": "Weak hook, no question."}`,
		strings.Join(variations, ","))
}

func newOptimizer(resp string) (*Optimizer, *fakeLLM) {
	f := &fakeLLM{response: resp}
	return New(f, config.Default().Scoring), f
}

func TestScoreOnly(t *testing.T) {
	o, _ := newOptimizer("")
	f, report := o.ScoreOnly("shipping a new cache layer today. thoughts?", false)
	if f.CharCount == 0 {
		t.Fatal("features not populated")
	}
	if report.Overall < 0 || report.Overall > 100 {
		t.Fatalf("overall out of range: %f", report.Overall)
	}
}

func TestVariationsRun(t *testing.T) {
	o, f := newOptimizer(cannedResponse(
		"Unpopular opinion: your roadmap is a wish list. What would you cut first?",
		"Roadmaps die on contact with customers. Agree?",
	))
	res, err := o.Variations(context.Background(), "we have a roadmap", Options{Lang: "en"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Variations) != 2 {
		t.Fatalf("variations = %d", len(res.Variations))
	}
	if res.Analysis == "" {
		t.Fatal("analysis missing")
	}
	for _, v := range res.Variations {
		if len(v.Comparison.Delta) != len(algorithm.Signals()) {
			t.Fatalf("delta covers %d signals", len(v.Comparison.Delta))
		}
	}
	if len(f.prompts) != 1 || !strings.Contains(f.prompts[0], "we have a roadmap") {
		t.Fatal("prompt did not carry the original tweet")
	}
	if res.Best() == nil {
		t.Fatal("best variation missing")
	}
}

func TestPreserveStyleSurfacesLLMError(t *testing.T) {
	o, _ := newOptimizer("")
	f := &fakeLLM{err: errors.New("rate limited")}
	o.client = f
	if _, err := o.PreserveStyle(context.Background(), "draft", Options{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRefineBaselineIsOriginalDraft(t *testing.T) {
	o, f := newOptimizer(cannedResponse("Shorter. Punchier. Still a question?"))
	res, err := o.Refine(context.Background(), "the original draft", "the current version", "make it shorter", Options{Lang: "en"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.prompts[0], "the current version") {
		t.Fatal("refine prompt missing current version")
	}
	if res.Original.Overall != res.Variations[0].Comparison.Original.Overall {
		t.Fatal("comparison baseline drifted from original draft")
	}
}

func TestIncompleteScoresFallBackToEstimator(t *testing.T) {
	partial := `{"variations":[{"tweet":"A tweet with no self-reported scores.","scores":{"reply_score":0.9}}],"analysis":"x"}`
	o, _ := newOptimizer(partial)
	res, err := o.Variations(context.Background(), "draft text", Options{})
	if err != nil {
		t.Fatal(err)
	}
	set := res.Variations[0].Comparison.Optimized.Signals
	if !set.Complete() {
		t.Fatal("fallback estimate should cover every signal")
	}
	// The estimator never returns 0.9 for reply on plain text, so the
	// self-reported value must have been discarded.
	if set.Get(algorithm.Reply) == 0.9 {
		t.Fatal("self-reported score survived the fallback")
	}
}

func TestVerifyOverridesSelfReportedScores(t *testing.T) {
	o, _ := newOptimizer(cannedResponse("A declarative statement with no hook at all"))
	res, err := o.Variations(context.Background(), "draft", Options{Verify: true})
	if err != nil {
		t.Fatal(err)
	}
	// cannedResponse reports 0.5 for every positive signal; the estimator
	// gives report_score a 0.02 floor.
	if res.Variations[0].Comparison.Optimized.Signals.Get(algorithm.Report) == 0.05 {
		t.Fatal("verify should replace self-reported scores")
	}
}

func TestFromTrending(t *testing.T) {
	o, f := newOptimizer(cannedResponse("Everyone praising the new GC misses the real story: tail latency."))
	res, err := o.FromTrending(context.Background(), discovery.TrendingTopic{
		Name:    "Go garbage collector",
		Context: "benchmarks circulating",
	}, discovery.AngleContrarian, Options{Lang: "en"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Variations) != 1 {
		t.Fatalf("variations = %d", len(res.Variations))
	}
	if !strings.Contains(f.prompts[0], "Go garbage collector") {
		t.Fatal("prompt missing topic")
	}
	if res.Features.CharCount == 0 {
		t.Fatal("baseline features should come from the generated tweet")
	}
}
