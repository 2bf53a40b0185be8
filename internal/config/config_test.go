package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "dpml.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Output != DefaultOutputFormat {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutputFormat)
	}
	if len(cfg.SearchPaths) != 0 {
		t.Errorf("SearchPaths = %v, want empty", cfg.SearchPaths)
	}
}

func TestParseFillsDefaultOutput(t *testing.T) {
	cfg, err := Parse([]byte("search_paths:\n  - vendor/dpml\n  - shared\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Output != DefaultOutputFormat {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutputFormat)
	}
	if len(cfg.SearchPaths) != 2 || cfg.SearchPaths[0] != "vendor/dpml" || cfg.SearchPaths[1] != "shared" {
		t.Errorf("SearchPaths = %v", cfg.SearchPaths)
	}
}

func TestParseHonorsExplicitOutputAndDepth(t *testing.T) {
	cfg, err := Parse([]byte("output: json\nmax_import_depth: 8\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if cfg.MaxImportDepth != 8 {
		t.Errorf("MaxImportDepth = %d, want 8", cfg.MaxImportDepth)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("output: [unterminated\n"))
	if err == nil {
		t.Fatal("expected a parse error for malformed YAML")
	}
}
