package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRecallKeywordsDefaults(t *testing.T) {
	keywords, err := LoadRecallKeywords("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if len(keywords) == 0 {
		t.Fatal("default keyword set is empty")
	}
}

func TestLoadRecallKeywordsFromFile(t *testing.T) {
	content := "recall_keywords:\n" +
		"  - Sammanfatta\n" +
		"  - \"  minns du  \"\n" +
		"  - \"\"\n"

	path := filepath.Join(t.TempDir(), "keywords.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	keywords, err := LoadRecallKeywords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []string{"sammanfatta", "minns du"}
	if len(keywords) != len(want) {
		t.Fatalf("got %v, want %v", keywords, want)
	}
	for i := range want {
		if keywords[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q (lowercased, trimmed)", i, keywords[i], want[i])
		}
	}
}

func TestLoadRecallKeywordsMissingFile(t *testing.T) {
	if _, err := LoadRecallKeywords(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadRecallKeywordsEmptyFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	if err := os.WriteFile(path, []byte("recall_keywords: []\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	keywords, err := LoadRecallKeywords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(keywords) != len(DefaultRecallKeywords) {
		t.Errorf("empty file should fall back to defaults, got %v", keywords)
	}
}
