// Package display renders scoring reports and optimization comparisons
// for the terminal: box-drawn sections, signal bars, and change arrows.
package display

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"amplify/internal/algorithm"
	"amplify/internal/analyzer"
	"amplify/internal/config"
	"amplify/internal/optimizer"
	"amplify/internal/scorer"
	"amplify/internal/util"
)

const (
	hLine     = "─"
	boxH      = "═"
	boxV      = "║"
	boxTL     = "╔"
	boxTR     = "╗"
	boxBL     = "╚"
	boxBR     = "╝"
	boxL      = "╠"
	boxR      = "╣"
	blockFull = "█"
	blockDim  = "░"

	width = 68
)

// Renderer formats reports according to the display config.
type Renderer struct {
	cfg config.DisplayConfig
}

func New(cfg config.DisplayConfig) *Renderer {
	if cfg.BarWidth <= 0 {
		cfg.BarWidth = 24
	}
	if cfg.TopSignals <= 0 {
		cfg.TopSignals = 8
	}
	return &Renderer{cfg: cfg}
}

func bar(value float64, w int) string {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	filled := int(value * float64(w))
	return strings.Repeat(blockFull, filled) + strings.Repeat(blockDim, w-filled)
}

// changeArrows maps a percentage change to arrow glyphs. For negative
// signals a decrease is the good direction.
func changeArrows(deltaPct float64, isNegative bool) string {
	if isNegative {
		switch {
		case deltaPct <= -50:
			return "▼▼ (improved)"
		case deltaPct < 0:
			return "▼ (improved)"
		case deltaPct > 50:
			return "▲▲ (worse)"
		case deltaPct > 0:
			return "▲ (worse)"
		}
		return ""
	}
	abs := deltaPct
	if abs < 0 {
		abs = -abs
	}
	var n int
	switch {
	case abs >= 300:
		n = 4
	case abs >= 100:
		n = 3
	case abs >= 50:
		n = 2
	case abs > 0:
		n = 1
	default:
		return ""
	}
	if deltaPct > 0 {
		return strings.Repeat("▲", n)
	}
	return strings.Repeat("▼", n)
}

func padRight(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}

func boxLine(text string) string {
	return boxV + "  " + padRight(text, width-6) + "  " + boxV
}

func boxTop() string       { return boxTL + strings.Repeat(boxH, width-2) + boxTR }
func boxBottom() string    { return boxBL + strings.Repeat(boxH, width-2) + boxBR }
func boxSeparator() string { return boxL + strings.Repeat(boxH, width-2) + boxR }

func titleCase(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func truncate(text string, max int) string {
	text = util.NormalizeWhitespace(text)
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max-3]) + "..."
}

// Header renders the title box.
func (r *Renderer) Header() string {
	return strings.Join([]string{
		boxTop(),
		boxLine("X ALGORITHM TWEET OPTIMIZER"),
		boxSeparator(),
	}, "\n")
}

// displaySignals picks which signals to show: everything when configured,
// otherwise the strongest positives plus every negative.
func (r *Renderer) displaySignals(scores algorithm.ScoreSet, verbose bool) []algorithm.Signal {
	if r.cfg.ShowAllSignals || verbose {
		return algorithm.Signals()
	}
	sigs := algorithm.Signals()
	sort.SliceStable(sigs, func(i, j int) bool {
		return signalRank(scores, sigs[i]) > signalRank(scores, sigs[j])
	})
	if len(sigs) > r.cfg.TopSignals {
		sigs = sigs[:r.cfg.TopSignals]
	}
	return sigs
}

func signalRank(scores algorithm.ScoreSet, s algorithm.Signal) float64 {
	if algorithm.IsNegative(s) {
		return 999
	}
	return scores.Get(s)
}

// Original renders the input tweet with its signal profile.
func (r *Renderer) Original(tweet string, f analyzer.Features, report scorer.Report, verbose bool) string {
	lines := []string{
		boxLine("Original Tweet"),
		boxLine(fmt.Sprintf("%q", truncate(tweet, width-8))),
		boxLine(fmt.Sprintf("Characters: %d/280 | Lang: %s | Algorithm Score: %.0f%%",
			f.CharCount, strings.ToUpper(f.Lang), report.Overall)),
		boxSeparator(),
		"",
		" Original Signal Profile:",
		" " + strings.Repeat(hLine, 50),
	}

	for _, s := range r.displaySignals(report.Signals, verbose) {
		val := report.Signals.Get(s)
		risk := ""
		if algorithm.IsNegative(s) {
			risk = "  (risk)"
		}
		lines = append(lines, fmt.Sprintf(" %s %s %3.0f%%%s",
			padRight(string(s), 28), bar(val, 20), val*100, risk))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// Variation renders one optimized candidate with its signal changes and
// category compatibility.
func (r *Renderer) Variation(index int, v optimizer.VariationResult, verbose bool) string {
	comp := v.Comparison
	change := comp.OverallChange
	sign := "+"
	if change < 0 {
		sign = ""
	}
	lines := []string{
		boxSeparator(),
		boxLine(fmt.Sprintf("Variation %d: %q", index, v.Strategy)),
		boxLine(fmt.Sprintf("Algorithm Compatibility: %.0f%% (%s%.0fpts)",
			comp.Optimized.Overall, sign, change)),
		boxSeparator(),
		boxLine(""),
	}
	for _, tl := range strings.Split(v.Tweet, "\n") {
		lines = append(lines, boxLine(tl))
	}
	charCount := v.CharCount
	if charCount == 0 {
		charCount = utf8.RuneCountInString(v.Tweet)
	}
	lines = append(lines,
		boxLine(""),
		boxLine(fmt.Sprintf("Characters: %d/280", charCount)),
		boxLine(""),
		boxLine("Signal Changes:"),
		boxLine(strings.Repeat(hLine, 52)))

	for _, s := range r.deltaSignals(comp.Delta, verbose) {
		d := comp.Delta[s]
		dsign := "+"
		if d.DeltaPct < 0 {
			dsign = ""
		}
		lines = append(lines, boxLine(fmt.Sprintf("%s %3.0f%% → %3.0f%%   %s%.1f%%   %s",
			padRight(string(s), 28), d.Original*100, d.Optimized*100,
			dsign, d.DeltaPct, changeArrows(d.DeltaPct, algorithm.IsNegative(s)))))
	}

	lines = append(lines, boxLine(""), boxLine("Category Compatibility:"))
	for _, cat := range config.CategoryOrder {
		cd, ok := comp.CategoryDelta[cat]
		if !ok {
			continue
		}
		csign := "+"
		if cd.Change < 0 {
			csign = ""
		}
		label := titleCase(strings.ReplaceAll(cat, "_", " "))
		lines = append(lines, boxLine(fmt.Sprintf("%s %s %3.0f%%  (%s%.0fpts)",
			padRight(label, 20), bar(cd.Optimized/100, r.cfg.BarWidth), cd.Optimized, csign, cd.Change)))
	}
	lines = append(lines, boxLine(""))

	if v.MediaSuggestion != "" {
		lines = append(lines, boxLine("Media Suggestion: "+truncate(v.MediaSuggestion, width-24)))
	}
	if v.Explanation != "" && verbose {
		lines = append(lines, boxLine("Strategy: "+truncate(v.Explanation, width-16)))
	}
	return strings.Join(lines, "\n")
}

// deltaSignals orders signals by absolute movement and trims to the
// configured count unless everything was requested.
func (r *Renderer) deltaSignals(delta map[algorithm.Signal]scorer.SignalDelta, verbose bool) []algorithm.Signal {
	if r.cfg.ShowAllSignals || verbose {
		return algorithm.Signals()
	}
	sigs := algorithm.Signals()
	sort.SliceStable(sigs, func(i, j int) bool {
		a, b := delta[sigs[i]].DeltaPct, delta[sigs[j]].DeltaPct
		if a < 0 {
			a = -a
		}
		if b < 0 {
			b = -b
		}
		return a > b
	})
	if len(sigs) > r.cfg.TopSignals {
		sigs = sigs[:r.cfg.TopSignals]
	}
	return sigs
}

// Summary renders the closing comparison table.
func (r *Renderer) Summary(res *optimizer.Result) string {
	lines := []string{
		boxSeparator(),
		"",
		" Summary Comparison:",
		" " + strings.Repeat(hLine, 56),
		fmt.Sprintf(" %-12s %-24s %6s   %8s", "Variation", "Strategy", "Score", "Change"),
		" " + strings.Repeat(hLine, 56),
		fmt.Sprintf(" %-12s %-24s %5.0f%%   %8s", "Original", "-", res.Original.Overall, "-"),
	}
	for i, v := range res.Variations {
		sign := "+"
		if v.Comparison.OverallChange < 0 {
			sign = ""
		}
		lines = append(lines, fmt.Sprintf(" #%-11d %-24s %5.0f%%   %s%.0fpts",
			i+1, truncate(v.Strategy, 22), v.Comparison.Optimized.Overall,
			sign, v.Comparison.OverallChange))
	}
	lines = append(lines, " "+strings.Repeat(hLine, 56), "")
	return strings.Join(lines, "\n")
}

// ScoreReport renders a standalone scoring report with no variations.
func (r *Renderer) ScoreReport(tweet string, f analyzer.Features, report scorer.Report, verbose bool) string {
	lines := []string{
		r.Header(),
		r.Original(tweet, f, report, verbose),
		" Category Compatibility:",
		" " + strings.Repeat(hLine, 50),
	}
	for _, cat := range config.CategoryOrder {
		v, ok := report.Categories[cat]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf(" %s %s %3.0f%%",
			padRight(titleCase(strings.ReplaceAll(cat, "_", " ")), 20), bar(v, r.cfg.BarWidth), v*100))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// Full renders the complete optimization result.
func (r *Renderer) Full(tweet string, res *optimizer.Result, verbose bool) string {
	parts := []string{
		r.Header(),
		r.Original(tweet, res.Features, res.Original, verbose),
	}
	for i, v := range res.Variations {
		parts = append(parts, r.Variation(i+1, v, verbose))
	}
	parts = append(parts, r.Summary(res))
	if res.Analysis != "" {
		parts = append(parts, " Analysis: "+res.Analysis, "")
	}
	parts = append(parts, boxBottom())
	return strings.Join(parts, "\n")
}
