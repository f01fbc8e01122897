package scorer

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"amplify/internal/algorithm"
	"amplify/internal/analyzer"
	"amplify/internal/config"
)

func scoring() config.ScoringConfig {
	return config.Default().Scoring
}

func mediaHeavyFeatures(hasMedia bool) analyzer.Features {
	return analyzer.Features{
		CharCount:       210,
		CharUtilization: 75,
		LineCount:       4,
		HasHook:         true,
		PowerWordCount:  3,
		HasNumbers:      true,
		HasMedia:        hasMedia,
	}
}

func TestEstimateDeterministic(t *testing.T) {
	f := mediaHeavyFeatures(true)
	a := Estimate(f)
	b := Estimate(f)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("estimate is not deterministic")
	}
}

func TestEstimateRangeInvariant(t *testing.T) {
	cases := []analyzer.Features{
		{},
		mediaHeavyFeatures(true),
		{CharCount: 280, CharUtilization: 100, LineCount: 12, HasHook: true,
			HasQuestion: true, QuestionCount: 9, HashtagCount: 20, HasURL: true,
			URLCount: 3, HasCTA: true, CTACount: 6, HasNumbers: true,
			HasListFormat: true, PowerWordCount: 15, EmojiCount: 10, HasMedia: true},
	}
	for _, f := range cases {
		s := Estimate(f)
		if !s.Complete() {
			t.Fatalf("estimate missing signals for %+v", f)
		}
		for sig, v := range s {
			if v < 0 || v > 1 {
				t.Fatalf("%s = %f out of [0,1]", sig, v)
			}
		}
	}
}

func TestMediaGating(t *testing.T) {
	s := Estimate(mediaHeavyFeatures(false))
	if s.Get(algorithm.VideoView) >= 0.2 {
		t.Fatalf("vqv without media = %f", s.Get(algorithm.VideoView))
	}

	// Without media the raw vqv estimate must not leak into the weighted
	// score regardless of its value.
	s[algorithm.VideoView] = 0.95
	got := algorithm.WeightedScore(s, false)
	zeroed := algorithm.ScoreSet{}
	for k, v := range s {
		zeroed[k] = v
	}
	zeroed[algorithm.VideoView] = 0
	if got != algorithm.WeightedScore(zeroed, false) {
		t.Fatal("vqv contributed to weighted score without media")
	}
}

func TestMonotonicHashtagPenalty(t *testing.T) {
	few := analyzer.Features{CharCount: 120, CharUtilization: 43, LineCount: 2, HashtagCount: 1}
	many := few
	many.HashtagCount = 6
	if Estimate(many).Get(algorithm.NotInterested) < Estimate(few).Get(algorithm.NotInterested) {
		t.Fatal("hashtag excess must not lower not_interested")
	}
}

func TestSafetyIsComplementOfNegativeMean(t *testing.T) {
	s := Estimate(mediaHeavyFeatures(true))
	cats := CategoryScores(s, scoring())
	sum := 0.0
	for _, n := range algorithm.NegativeSignals() {
		sum += s.Get(n)
	}
	want := 1.0 - sum/float64(len(algorithm.NegativeSignals()))
	if math.Abs(cats[config.CategorySafety]-want) > 1e-12 {
		t.Fatalf("safety = %f want %f", cats[config.CategorySafety], want)
	}
}

func TestOverallBounds(t *testing.T) {
	sc := scoring()
	for _, cats := range []map[string]float64{
		{config.CategoryEngagement: 0, config.CategoryDiscoverability: 0,
			config.CategoryShareability: 0, config.CategoryContentQuality: 0,
			config.CategorySafety: 0},
		{config.CategoryEngagement: 1, config.CategoryDiscoverability: 1,
			config.CategoryShareability: 1, config.CategoryContentQuality: 1,
			config.CategorySafety: 1},
		CategoryScores(Estimate(mediaHeavyFeatures(true)), sc),
	} {
		v := OverallScore(cats, sc)
		if v < 0 || v > 100 {
			t.Fatalf("overall = %f out of [0,100]", v)
		}
	}
}

func TestDeltaSignConvention(t *testing.T) {
	orig := algorithm.ScoreSet{algorithm.Favorite: 0.20, algorithm.NotInterested: 0.20}
	opt := algorithm.ScoreSet{algorithm.Favorite: 0.50, algorithm.NotInterested: 0.50}
	d := Delta(orig, opt)

	fav := d[algorithm.Favorite]
	if fav.DeltaPct != 150.0 || fav.Direction != "improved" {
		t.Fatalf("positive signal: %+v", fav)
	}
	ni := d[algorithm.NotInterested]
	if ni.DeltaPct != 150.0 || ni.Direction != "worse" {
		t.Fatalf("negative signal: %+v", ni)
	}
}

func TestDeltaZeroIsNotImprovement(t *testing.T) {
	same := algorithm.ScoreSet{algorithm.Favorite: 0.30}
	d := Delta(same, same)
	if d[algorithm.Favorite].Direction != "worse" {
		t.Fatal("no movement must not report improved")
	}
}

func TestLowEffortHashtagStuffedPost(t *testing.T) {
	f := analyzer.Features{
		CharCount:       45,
		CharUtilization: 16,
		LineCount:       1,
		HashtagCount:    5,
	}
	rep := Score(f, scoring())
	if rep.Signals.Get(algorithm.NotInterested) < 0.25 {
		t.Fatalf("not_interested = %f", rep.Signals.Get(algorithm.NotInterested))
	}
	if rep.Overall > 100.0/3 {
		t.Fatalf("overall = %f, expected bottom third", rep.Overall)
	}
}

func TestMediaLiftsOverall(t *testing.T) {
	withMedia := Score(mediaHeavyFeatures(true), scoring())
	if withMedia.Signals.Get(algorithm.PhotoExpand) < 0.5 {
		t.Fatalf("photo_expand = %f", withMedia.Signals.Get(algorithm.PhotoExpand))
	}
	if withMedia.Signals.Get(algorithm.Dwell) < 0.4 {
		t.Fatalf("dwell = %f", withMedia.Signals.Get(algorithm.Dwell))
	}
	without := Score(mediaHeavyFeatures(false), scoring())
	if withMedia.Overall <= without.Overall {
		t.Fatalf("media should lift overall: %f vs %f", withMedia.Overall, without.Overall)
	}
}

func TestCompareReport(t *testing.T) {
	orig := analyzer.Features{CharCount: 45, CharUtilization: 16, LineCount: 1, HashtagCount: 5}
	optimized := Estimate(mediaHeavyFeatures(true))

	c := Compare(orig, optimized, scoring())
	if c.OverallChange <= 0 {
		t.Fatalf("optimized variant should raise overall, change = %f", c.OverallChange)
	}
	if len(c.Delta) != 19 {
		t.Fatalf("delta covers %d signals", len(c.Delta))
	}
	if len(c.CategoryDelta) != len(config.CategoryOrder) {
		t.Fatalf("category delta covers %d categories", len(c.CategoryDelta))
	}
	want := round1(c.Optimized.Overall - c.Original.Overall)
	if c.OverallChange != want {
		t.Fatalf("overall change = %f want %f", c.OverallChange, want)
	}
}

func TestCompareStrictRejectsIncompleteScores(t *testing.T) {
	orig := analyzer.Features{CharCount: 45, CharUtilization: 16, LineCount: 1}
	partial := algorithm.ScoreSet{algorithm.Favorite: 0.5}

	_, err := CompareStrict(orig, partial, scoring())
	if err == nil || !strings.Contains(err.Error(), "incomplete") {
		t.Fatalf("expected incompleteness error, got %v", err)
	}

	full := Estimate(mediaHeavyFeatures(true))
	if _, err := CompareStrict(orig, full, scoring()); err != nil {
		t.Fatal(err)
	}
}
