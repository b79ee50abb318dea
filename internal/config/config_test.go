package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2
  max_conn_lifetime: "30m"

search:
  single_wildcard: "?"
  multiple_wildcard: "*"
  escape: "\\"
  case_insensitive: false
  fullwidth_folding: false
  headword_preference: "t"
  enumerate_tones: true

seed:
  batch_size: 200

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Database.MaxConnLifetime != 30*time.Minute {
		t.Errorf("database.max_conn_lifetime = %v, want 30m", cfg.Database.MaxConnLifetime)
	}

	// Search
	if cfg.Search.SingleWildcard != "?" {
		t.Errorf("search.single_wildcard = %q, want %q", cfg.Search.SingleWildcard, "?")
	}
	if cfg.Search.MultipleWildcard != "*" {
		t.Errorf("search.multiple_wildcard = %q, want %q", cfg.Search.MultipleWildcard, "*")
	}
	if cfg.Search.CaseInsensitive {
		t.Error("search.case_insensitive should be false")
	}
	if cfg.Search.FullwidthFolding {
		t.Error("search.fullwidth_folding should be false")
	}
	if cfg.Search.HeadwordPreference != "t" {
		t.Errorf("search.headword_preference = %q, want %q", cfg.Search.HeadwordPreference, "t")
	}
	if !cfg.Search.EnumerateTones {
		t.Error("search.enumerate_tones should be true")
	}

	// Seed
	if cfg.Seed.BatchSize != 200 {
		t.Errorf("seed.batch_size = %d, want 200", cfg.Seed.BatchSize)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SEARCH_SINGLE_WILDCARD", "_")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Search.SingleWildcard != "_" {
		t.Errorf("search.single_wildcard = %q, want %q (ENV override)", cfg.Search.SingleWildcard, "_")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("CONFIG_PATH", "")

	// Run from a temp dir with no config.yaml so the fallback path is absent.
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Search.SingleWildcard != "_" {
		t.Errorf("search.single_wildcard = %q, want %q (default)", cfg.Search.SingleWildcard, "_")
	}
	if cfg.Search.MultipleWildcard != "%" {
		t.Errorf("search.multiple_wildcard = %q, want %q (default)", cfg.Search.MultipleWildcard, "%")
	}
	if cfg.Search.Escape != `\` {
		t.Errorf("search.escape = %q, want %q (default)", cfg.Search.Escape, `\`)
	}
	if !cfg.Search.CaseInsensitive {
		t.Error("search.case_insensitive should default to true")
	}
	if cfg.Search.HeadwordPreference != "b" {
		t.Errorf("search.headword_preference = %q, want %q (default)", cfg.Search.HeadwordPreference, "b")
	}
	if cfg.Seed.BatchSize != 500 {
		t.Errorf("seed.batch_size = %d, want 500 (default)", cfg.Seed.BatchSize)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_WildcardNotSingleCharacter(t *testing.T) {
	cfg := validConfig()
	cfg.Search.SingleWildcard = "??"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for multi-character single wildcard")
	}
}

func TestValidate_WildcardEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Search.MultipleWildcard = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty multiple wildcard")
	}
}

func TestValidate_EscapeMultiByteRuneOK(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Escape = "＊"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("one multi-byte rune should be accepted: %v", err)
	}
}

func TestValidate_MarkersMustBeDistinct(t *testing.T) {
	cfg := validConfig()
	cfg.Search.MultipleWildcard = cfg.Search.SingleWildcard

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for identical wildcard markers")
	}
}

func TestValidate_HeadwordPreferenceInvalid(t *testing.T) {
	cfg := validConfig()
	cfg.Search.HeadwordPreference = "x"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown headword preference")
	}
}

func TestValidate_HeadwordPreferenceValues(t *testing.T) {
	for _, pref := range []string{"s", "t", "b"} {
		cfg := validConfig()
		cfg.Search.HeadwordPreference = pref

		if err := cfg.Validate(); err != nil {
			t.Errorf("preference %q: unexpected error: %v", pref, err)
		}
	}
}

func TestValidate_SeedBatchSizeZero(t *testing.T) {
	cfg := validConfig()
	cfg.Seed.BatchSize = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for batch_size = 0")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Search: SearchConfig{
			SingleWildcard:     "_",
			MultipleWildcard:   "%",
			Escape:             `\`,
			CaseInsensitive:    true,
			FullwidthFolding:   true,
			HeadwordPreference: "b",
		},
		Seed: SeedConfig{
			BatchSize: 500,
		},
	}
}
