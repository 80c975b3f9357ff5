package generator

import "testing"

func TestGoFieldNameManglesKeywords(t *testing.T) {
	used := make(map[string]bool)
	if got := goFieldName("type", used); got != "Type_" {
		t.Fatalf("goFieldName(type) = %q, want Type_", got)
	}
}

func TestGoFieldNameDisambiguatesCollisions(t *testing.T) {
	used := make(map[string]bool)
	first := goFieldName("name", used)
	second := goFieldName("name", used)
	if first == second {
		t.Fatalf("expected distinct names, got %q twice", first)
	}
	if second != first+"2" {
		t.Fatalf("disambiguate produced %q, want %q", second, first+"2")
	}
}
