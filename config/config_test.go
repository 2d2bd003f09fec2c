package config

import (
	"os"
	"path/filepath"
	"testing"

	"docspell.dev/docspell/literal"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docspell.toml")
	if err := os.WriteFile(path, []byte(""), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxLineLength != 80 {
		t.Fatalf("MaxLineLength = %d, want 80", cfg.MaxLineLength)
	}
}

func TestLoadVariantPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docspell.toml")
	content := `max_line_length = 100

[ignores]
footnote_references = true

[variant_policy.slash_asterisk]
skip_reflow = true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxLineLength != 100 {
		t.Fatalf("MaxLineLength = %d, want 100", cfg.MaxLineLength)
	}
	if !cfg.Ignores.FootnoteReferences {
		t.Fatal("expected FootnoteReferences to be true")
	}
	override, ok := cfg.VariantPolicy[literal.SlashAsterisk]
	if !ok {
		t.Fatal("expected a VariantPolicy entry for slash_asterisk")
	}
	if !override.SkipReflow {
		t.Fatal("expected SkipReflow to be true")
	}
}

func TestLoadUnknownVariant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docspell.toml")
	content := "[variant_policy.bogus]\nskip_reflow = true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown comment variant name")
	}
}
