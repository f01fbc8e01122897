package util

import (
	"reflect"
	"testing"
)

func TestNormalizeWhitespace(t *testing.T) {
	if got := NormalizeWhitespace("  a \n\t b  "); got != "a b" {
		t.Fatalf("got %q", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Don't ship, fix bugs first!")
	want := []string{"dont", "ship", "fix", "bugs", "first"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v", got)
	}
}

func TestContainsAnyCaseInsensitive(t *testing.T) {
	if !ContainsAnyCaseInsensitive("Popular Take: yes", []string{"popular"}) {
		t.Fatal("expected match")
	}
	if ContainsAnyCaseInsensitive("nothing here", []string{"popular"}) {
		t.Fatal("unexpected match")
	}
}
