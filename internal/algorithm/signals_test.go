package algorithm

import (
	"errors"
	"math"
	"testing"
)

func TestCatalogHasNineteenSignalsInStableOrder(t *testing.T) {
	got := Signals()
	if len(got) != 19 {
		t.Fatalf("expected 19 signals, got %d", len(got))
	}
	if got[0] != Favorite || got[18] != DwellTime {
		t.Fatalf("unexpected catalog order: first=%s last=%s", got[0], got[18])
	}
	again := Signals()
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("catalog order not stable at %d", i)
		}
	}
}

func TestEverySignalHasLabelAndWeight(t *testing.T) {
	for _, s := range Signals() {
		if _, err := Label(s); err != nil {
			t.Fatalf("label %s: %v", s, err)
		}
		if _, err := Weight(s); err != nil {
			t.Fatalf("weight %s: %v", s, err)
		}
	}
}

func TestUnknownSignal(t *testing.T) {
	_, err := Weight(Signal("bogus_score"))
	var unknown *UnknownSignalError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSignalError, got %v", err)
	}
	if unknown.Signal != "bogus_score" {
		t.Fatalf("unexpected signal in error: %s", unknown.Signal)
	}
}

func TestNegativeSignals(t *testing.T) {
	negs := NegativeSignals()
	if len(negs) != 4 {
		t.Fatalf("expected 4 negative signals, got %d", len(negs))
	}
	for _, s := range negs {
		w, _ := Weight(s)
		if w >= 0 {
			t.Fatalf("negative signal %s has non-negative weight %f", s, w)
		}
	}
	if IsNegative(Favorite) {
		t.Fatal("favorite_score must not be negative")
	}
}

func TestDerivedWeightSums(t *testing.T) {
	if math.Abs(WeightsSum()-200.1) > 1e-9 {
		t.Fatalf("positive weight sum = %f", WeightsSum())
	}
	if math.Abs(NegativeWeightsSum()-9728.0) > 1e-9 {
		t.Fatalf("negative weight sum = %f", NegativeWeightsSum())
	}
	want := 9728.0 / 200.1
	if math.Abs(NegativeScoresOffset()-want) > 1e-9 {
		t.Fatalf("offset ratio = %f want %f", NegativeScoresOffset(), want)
	}
}

func TestNewScoreSetRejectsUnknownKeys(t *testing.T) {
	_, err := NewScoreSet(map[string]float64{"favorite_score": 0.5, "made_up": 0.1})
	var unknown *UnknownSignalError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSignalError, got %v", err)
	}

	ss, err := NewScoreSet(map[string]float64{"favorite_score": 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if ss.Complete() {
		t.Fatal("partial set should not be complete")
	}
	if ss.Get(Reply) != 0 {
		t.Fatal("missing key must read as 0")
	}
}
