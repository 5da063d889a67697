package game

import (
	"errors"
	"testing"
)

type stubWordSource struct {
	words map[string][]string
	fail  map[string]bool
	calls int
}

func (s *stubWordSource) WordsByCategory(category string) ([]string, error) {
	s.calls++
	if s.fail[category] {
		return nil, errors.New("source unavailable")
	}
	return s.words[category], nil
}

func TestDictionaryHasExactNormalizes(t *testing.T) {
	dict := NewDictionary(nil)
	for _, word := range []string{"manzana", "MANZANA", "  Manzana  ", "mánzana"} {
		if !dict.HasExact("frutas", word) {
			t.Fatalf("expected exact match for %q", word)
		}
	}
	if dict.HasExact("frutas", "teclado") {
		t.Fatalf("unexpected match for unknown word")
	}
	if dict.HasExact("sin-categoria", "manzana") {
		t.Fatalf("unexpected match for unknown category")
	}
}

func TestDictionaryFuzzyMatch(t *testing.T) {
	dict := NewDictionary(nil)

	cases := []struct {
		name     string
		category string
		word     string
		want     bool
	}{
		{name: "exact always matches", category: "colores", word: "rojo", want: true},
		{name: "short words skip fuzzy", category: "colores", word: "roj", want: false},
		{name: "medium word one edit", category: "frutas", word: "manzna", want: true},
		{name: "medium word two edits too far", category: "colores", word: "vurdi", want: false},
		{name: "long word two edits", category: "profesiones", word: "vetirinaria", want: true},
		{name: "long word three edits too far", category: "profesiones", word: "vitirinariax", want: false},
		{name: "empty word", category: "colores", word: "  ", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dict.IsFuzzyMatch(tc.category, tc.word); got != tc.want {
				t.Fatalf("IsFuzzyMatch(%q, %q) = %t, want %t", tc.category, tc.word, got, tc.want)
			}
		})
	}
}

func TestDictionaryReloadReplacesCategory(t *testing.T) {
	source := &stubWordSource{
		words: map[string][]string{"frutas": {"pitahaya", "lichi"}},
	}
	dict := NewDictionary(source)

	if err := dict.Reload(false); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !dict.HasExact("frutas", "pitahaya") {
		t.Fatalf("expected reloaded word to be accepted")
	}
	if dict.HasExact("frutas", "manzana") {
		t.Fatalf("expected bundled set replaced by source set")
	}
	// Categories the source returned nothing for keep their fallback.
	if !dict.HasExact("colores", "rojo") {
		t.Fatalf("expected fallback set kept for empty source category")
	}
}

func TestDictionaryReloadFailureKeepsFallback(t *testing.T) {
	source := &stubWordSource{fail: map[string]bool{"frutas": true}}
	dict := NewDictionary(source)

	err := dict.Reload(false)
	if err == nil {
		t.Fatalf("expected error surfaced from failing category")
	}
	if !dict.HasExact("frutas", "manzana") {
		t.Fatalf("failed category must keep its fallback set")
	}
}

func TestDictionaryReloadForce(t *testing.T) {
	source := &stubWordSource{}
	dict := NewDictionary(source)

	if err := dict.Reload(false); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	first := source.calls
	if err := dict.Reload(false); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if source.calls != first {
		t.Fatalf("non-forced reload must not refetch, calls went %d -> %d", first, source.calls)
	}
	if err := dict.Reload(true); err != nil {
		t.Fatalf("forced reload failed: %v", err)
	}
	if source.calls == first {
		t.Fatalf("forced reload must refetch")
	}
}

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"rojo", "rojo", 0},
		{"rojo", "roja", 1},
		{"manzana", "manzna", 1},
		{"gato", "pato", 1},
		{"casa", "caos", 2},
	}
	for _, tc := range cases {
		if got := editDistance(tc.a, tc.b); got != tc.want {
			t.Fatalf("editDistance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
