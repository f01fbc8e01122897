package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"amplify/internal/algorithm"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultCoversEverySignalOnce(t *testing.T) {
	seen := map[string]int{}
	for _, members := range DefaultCategories() {
		for _, m := range members {
			seen[m]++
		}
	}
	for _, s := range algorithm.Signals() {
		if seen[string(s)] != 1 {
			t.Fatalf("signal %s appears %d times", s, seen[string(s)])
		}
	}
}

func TestValidateRejectsBadWeightSum(t *testing.T) {
	cfg := Default()
	cfg.Scoring.CategoryWeights[CategoryEngagement] = 0.9
	var cerr *ConfigurationError
	if err := cfg.Validate(); !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestValidateRejectsUnknownSignal(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Categories[CategorySafety] = append(cfg.Scoring.Categories[CategorySafety], "bogus_score")
	var cerr *ConfigurationError
	if err := cfg.Validate(); !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestValidateRejectsDuplicateMembership(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Categories[CategoryEngagement] = append(
		cfg.Scoring.Categories[CategoryEngagement], string(algorithm.Share))
	var cerr *ConfigurationError
	if err := cfg.Validate(); !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")
	want := Default()
	want.Account.Username = "amplifytester"
	want.Display.BarWidth = 30
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Account.Username != "amplifytester" || got.Display.BarWidth != 30 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Scoring.Categories) != len(CategoryOrder) {
		t.Fatalf("categories lost on round trip")
	}
}

func TestLoadMinimalYAMLBackfillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("account:\n  username: someone\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.TopSignals == 0 || cfg.LLM.MaxVariations == 0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
}
