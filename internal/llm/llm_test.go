package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"amplify/internal/algorithm"
	"amplify/internal/config"
)

func TestNewRequiresProvider(t *testing.T) {
	if _, err := New(config.LLMConfig{Provider: "none"}); !errors.Is(err, ErrNoProvider) {
		t.Fatalf("expected ErrNoProvider, got %v", err)
	}
	if _, err := New(config.LLMConfig{Provider: "openai"}); !errors.Is(err, ErrNoProvider) {
		t.Fatalf("missing key should map to ErrNoProvider, got %v", err)
	}
}

func TestCompleteChat(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer ts.Close()

	c := NewOpenAI(ts.URL, "key", "gpt-4o-mini")
	got, err := c.Complete(context.Background(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer ts.Close()

	c := NewOpenAI(ts.URL, "key", "gpt-4o-mini")
	_, err := c.Complete(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "bad key") {
		t.Fatalf("expected api error message, got %v", err)
	}
}

func variationJSON() string {
	var scores []string
	for _, s := range algorithm.Signals() {
		scores = append(scores, `"`+string(s)+`": 0.4`)
	}
	return `{
	  "variations": [{
	    "tweet": "Unpopular opinion: your roadmap is a wish list.",
	    "strategy": "Reply Magnet",
	    "char_count": 47,
	    "targeted_signals": ["reply_score", "quote_score"],
	    "scores": {` + strings.Join(scores, ",") + `},
	    "explanation": "Provokes debate."
	  }],
	  "analysis": "Original lacked a hook."
	}`
}

func TestParseOptimizeResponse(t *testing.T) {
	resp, err := ParseOptimizeResponse(variationJSON())
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Variations) != 1 || resp.Analysis == "" {
		t.Fatalf("bad parse: %+v", resp)
	}
	set, err := resp.Variations[0].ScoreSet()
	if err != nil {
		t.Fatal(err)
	}
	if !set.Complete() {
		t.Fatal("score set incomplete")
	}
	if set.Get(algorithm.Reply) != 0.4 {
		t.Fatalf("reply score = %f", set.Get(algorithm.Reply))
	}
}

func TestParseOptimizeResponseStripsFences(t *testing.T) {
	fenced := "Here you go:\n```json\n" + variationJSON() + "\n```\nHope that helps!"
	if _, err := ParseOptimizeResponse(fenced); err != nil {
		t.Fatal(err)
	}
}

func TestParseOptimizeResponseRejectsGarbage(t *testing.T) {
	if _, err := ParseOptimizeResponse("sorry, I cannot help with that"); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
	if _, err := ParseOptimizeResponse(`{"variations":[]}`); err == nil {
		t.Fatal("expected error for empty variations")
	}
	if _, err := ParseOptimizeResponse(`{"variations":[{"tweet":"  "}]}`); err == nil {
		t.Fatal("expected error for blank tweet")
	}
}

func TestVariationScoreSetRejectsUnknownSignal(t *testing.T) {
	v := Variation{Tweet: "x", Scores: map[string]float64{"vibes_score": 0.9}}
	if _, err := v.ScoreSet(); err == nil {
		t.Fatal("unknown signal must be rejected")
	}
}

func TestVariationScoreSetClamps(t *testing.T) {
	v := Variation{Tweet: "x", Scores: map[string]float64{string(algorithm.Favorite): 1.7}}
	set, err := v.ScoreSet()
	if err != nil {
		t.Fatal(err)
	}
	if set.Get(algorithm.Favorite) != 1.0 {
		t.Fatalf("clamp failed: %f", set.Get(algorithm.Favorite))
	}
}
