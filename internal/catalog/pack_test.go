package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPacks_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	base := Default()

	result, infos, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected 0 pack infos, got %d", len(infos))
	}
	if len(result.Keywords) != len(base.Keywords) {
		t.Errorf("expected %d keywords, got %d", len(base.Keywords), len(result.Keywords))
	}
}

func TestLoadPacks_NonExistentDir(t *testing.T) {
	base := Default()
	result, _, err := LoadPacks("/nonexistent/path/packs", base)
	if err != nil {
		t.Fatalf("unexpected error for non-existent dir: %v", err)
	}
	if result != base {
		t.Errorf("expected base catalog unchanged")
	}
}

func TestLoadPacks_MergesKeywordsAndWeights(t *testing.T) {
	dir := t.TempDir()
	base, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}
	baseKeywordCount := len(base.Keywords)

	packYAML := `
name: "Brisbane Office"
description: "Brisbane team keywords"
version: "1.0.0"
author: "Test"
keywords: [kind, brave]
linked_keywords: ["kind:generous"]
location_weights:
  - from: Brisbane
    to: Sydney
    weight: 5
`
	if err := os.WriteFile(filepath.Join(dir, "brisbane.yaml"), []byte(packYAML), 0644); err != nil {
		t.Fatal(err)
	}

	result, infos, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(infos) != 1 {
		t.Fatalf("expected 1 pack info, got %d", len(infos))
	}
	if infos[0].Name != "Brisbane Office" {
		t.Errorf("expected pack name 'Brisbane Office', got %q", infos[0].Name)
	}
	if infos[0].KeywordCount != 3 {
		t.Errorf("expected 3 keywords in pack, got %d", infos[0].KeywordCount)
	}
	if !infos[0].Enabled {
		t.Error("expected pack to be enabled")
	}

	if len(result.Keywords) != baseKeywordCount+2 {
		t.Errorf("expected %d keywords, got %d", baseKeywordCount+2, len(result.Keywords))
	}
	if len(base.Keywords) != baseKeywordCount {
		t.Errorf("base catalog was modified")
	}

	snap := Build(result, "test", nil)
	if got := snap.Catalog.Primary(); len(got) != 3 {
		t.Errorf("expected duplicates dropped to 3 primary keywords, got %v", got)
	}
	if !snap.Catalog.ContainsPrimary("generous") {
		t.Error("expected linked keyword from pack")
	}
	if got := snap.Weights.Weight("Brisbane", "Sydney"); got != 5 {
		t.Errorf("expected pack weight 5 to replace base weight, got %d", got)
	}
}

func TestLoadPacks_DisabledPack(t *testing.T) {
	dir := t.TempDir()
	base := Default()

	packYAML := `
name: "Disabled Pack"
require_keywords: true
keywords: [secret]
`
	if err := os.WriteFile(filepath.Join(dir, "_disabled.yaml"), []byte(packYAML), 0644); err != nil {
		t.Fatal(err)
	}

	result, infos, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(infos) != 1 {
		t.Fatalf("expected 1 pack info, got %d", len(infos))
	}
	if infos[0].Enabled {
		t.Error("expected pack to be disabled")
	}
	if len(result.Keywords) != 0 {
		t.Errorf("expected disabled pack keywords to be skipped, got %v", result.Keywords)
	}
	if *result.RequireKeywords {
		t.Error("disabled pack must not change require_keywords")
	}
}

func TestLoadPacks_RequireKeywordsIsSticky(t *testing.T) {
	dir := t.TempDir()
	base := Default()

	if err := os.WriteFile(filepath.Join(dir, "strict.yml"), []byte("require_keywords: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result, _, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RequireKeywords == nil || !*result.RequireKeywords {
		t.Error("expected an enabled pack to turn on required keywords")
	}
}

func TestLoadPacks_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	base := Default()

	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("{{invalid yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	result, infos, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 1 || infos[0].Error == "" {
		t.Fatalf("expected invalid pack to be reported, got %+v", infos)
	}
	if len(result.Keywords) != 0 {
		t.Errorf("expected no keywords merged from an invalid pack")
	}
}

func TestLoadPacks_SkipsNonYAML(t *testing.T) {
	dir := t.TempDir()
	base := Default()

	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a pack"), 0644); err != nil {
		t.Fatal(err)
	}

	_, infos, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected 0 pack infos, got %d", len(infos))
	}
}
