// Package optimizer runs the full rewrite loop: analyze the draft,
// estimate its current signals, prompt the model, validate what comes
// back, and score every candidate against the original.
package optimizer

import (
	"context"
	"fmt"
	"time"

	"amplify/internal/analyzer"
	"amplify/internal/config"
	"amplify/internal/discovery"
	"amplify/internal/llm"
	"amplify/internal/logging"
	"amplify/internal/metrics"
	"amplify/internal/profile"
	"amplify/internal/prompt"
	"amplify/internal/scorer"
)

// Options tune a single optimization run.
type Options struct {
	Style         string
	Topic         string
	Lang          string
	HasMedia      bool
	Thread        bool
	NumVariations int
	Profile       *profile.Profile

	// Verify discards the model's self-reported scores and re-runs the
	// heuristic estimator on each generated tweet's own features.
	Verify bool
}

// VariationResult is one generated rewrite with its full comparison
// against the original post.
type VariationResult struct {
	llm.Variation
	Comparison scorer.Comparison
}

// Result is the outcome of one optimization run.
type Result struct {
	Features   analyzer.Features
	Original   scorer.Report
	Analysis   string
	Variations []VariationResult
}

// Best returns the variation with the highest overall score, or nil when
// there are none.
func (r *Result) Best() *VariationResult {
	var best *VariationResult
	for i := range r.Variations {
		v := &r.Variations[i]
		if best == nil || v.Comparison.Optimized.Overall > best.Comparison.Optimized.Overall {
			best = v
		}
	}
	return best
}

// Optimizer composes the analyzer, scorer, prompt builder, and LLM client.
type Optimizer struct {
	client  llm.Client
	scoring config.ScoringConfig
}

func New(client llm.Client, scoring config.ScoringConfig) *Optimizer {
	return &Optimizer{client: client, scoring: scoring}
}

// ScoreOnly analyzes and scores a draft without calling the model.
func (o *Optimizer) ScoreOnly(text string, hasMedia bool) (analyzer.Features, scorer.Report) {
	f := analyzer.Analyze(text, hasMedia)
	return f, scorer.Score(f, o.scoring)
}

func (o *Optimizer) request(text string, opts Options) (analyzer.Features, prompt.Request) {
	f := analyzer.Analyze(text, opts.HasMedia)
	lang := opts.Lang
	if lang == "" {
		lang = analyzer.DetectLanguage(text)
	}
	return f, prompt.Request{
		Tweet:         text,
		Features:      f,
		Scores:        scorer.Estimate(f),
		Style:         opts.Style,
		Topic:         opts.Topic,
		Lang:          lang,
		HasMedia:      opts.HasMedia,
		Thread:        opts.Thread,
		Profile:       opts.Profile,
		NumVariations: opts.NumVariations,
	}
}

// Variations generates several rewrites, each pursuing a different
// signal-targeting strategy.
func (o *Optimizer) Variations(ctx context.Context, text string, opts Options) (*Result, error) {
	metrics.IncOptimizeRun("variations")
	f, req := o.request(text, opts)
	resp, err := o.complete(ctx, prompt.Variations(req))
	if err != nil {
		return nil, err
	}
	return o.evaluate(f, opts, resp)
}

// PreserveStyle generates a single rewrite that keeps the author's voice
// and meaning while lifting ranking signals.
func (o *Optimizer) PreserveStyle(ctx context.Context, text string, opts Options) (*Result, error) {
	metrics.IncOptimizeRun("preserve_style")
	f, req := o.request(text, opts)
	resp, err := o.complete(ctx, prompt.PreserveStyle(req))
	if err != nil {
		return nil, err
	}
	return o.evaluate(f, opts, resp)
}

// Refine applies user feedback to an already-optimized tweet. The
// comparison baseline stays the user's original draft.
func (o *Optimizer) Refine(ctx context.Context, originalText, currentTweet, feedback string, opts Options) (*Result, error) {
	metrics.IncOptimizeRun("refine")
	f, req := o.request(originalText, opts)
	resp, err := o.complete(ctx, prompt.Refine(originalText, currentTweet, feedback, req))
	if err != nil {
		return nil, err
	}
	return o.evaluate(f, opts, resp)
}

// FromTrending writes an original tweet about a trending topic from the
// chosen angle. There is no user draft to compare against, so the
// baseline is the generated tweet's own heuristic estimate.
func (o *Optimizer) FromTrending(ctx context.Context, topic discovery.TrendingTopic, angle discovery.Angle, opts Options) (*Result, error) {
	metrics.IncOptimizeRun("discovery")
	lang := opts.Lang
	if lang == "" {
		lang = "en"
	}
	resp, err := o.complete(ctx, prompt.DiscoveryTweet(prompt.DiscoveryRequest{
		Topic:    topic,
		Angle:    angle,
		Lang:     lang,
		HasMedia: opts.HasMedia,
		Thread:   opts.Thread,
		Profile:  opts.Profile,
	}))
	if err != nil {
		return nil, err
	}
	f := analyzer.Analyze(resp.Variations[0].Tweet, opts.HasMedia)
	return o.evaluate(f, opts, resp)
}

func (o *Optimizer) complete(ctx context.Context, p string) (*llm.OptimizeResponse, error) {
	metrics.IncLLMRequest()
	start := time.Now()
	raw, err := o.client.Complete(ctx, p)
	metrics.ObserveLLMDuration(start)
	if err != nil {
		metrics.IncLLMError()
		return nil, fmt.Errorf("llm completion: %w", err)
	}
	logging.Debug("llm_response", map[string]any{"bytes": len(raw)})
	resp, err := llm.ParseOptimizeResponse(raw)
	if err != nil {
		metrics.IncLLMError()
		return nil, err
	}
	return resp, nil
}

// evaluate validates each variation's scores and builds comparisons
// against the original features. Self-reported score sets that omit
// signals fall back to the heuristic estimator on the generated text.
func (o *Optimizer) evaluate(f analyzer.Features, opts Options, resp *llm.OptimizeResponse) (*Result, error) {
	out := &Result{
		Features: f,
		Original: scorer.Score(f, o.scoring),
		Analysis: resp.Analysis,
	}
	for i, v := range resp.Variations {
		set, err := v.ScoreSet()
		if err != nil {
			return nil, fmt.Errorf("variation %d: %w", i+1, err)
		}
		if opts.Verify || !set.Complete() {
			if !opts.Verify {
				logging.Warn("incomplete_scores", map[string]any{"variation": i + 1})
			}
			vf := analyzer.Analyze(v.Tweet, opts.HasMedia)
			set = scorer.Estimate(vf)
		}
		comp, err := scorer.CompareStrict(f, set, o.scoring)
		if err != nil {
			return nil, fmt.Errorf("variation %d: %w", i+1, err)
		}
		out.Variations = append(out.Variations, VariationResult{Variation: v, Comparison: comp})
	}
	return out, nil
}
