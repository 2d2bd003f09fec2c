// Package config defines docspell's on-disk configuration record and a
// convenience loader for it. Flag parsing and interactive prompts are the
// caller's concern; this package only decodes the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"docspell.dev/docspell/literal"
)

// Ignores toggles optional erasure/check behaviors that are otherwise on by
// default.
type Ignores struct {
	// FootnoteReferences mirrors markdown.Ignores.FootnoteReferences; the
	// plain overlay drops `[^name]` footnote reference markers whether or
	// not it is set.
	FootnoteReferences bool `toml:"footnote_references"`
}

// VariantOverride adjusts how a single comment variant is treated, e.g.
// disabling reflow for block comments in a tree that hand-formats them.
type VariantOverride struct {
	SkipReflow bool `toml:"skip_reflow"`
}

// Config is docspell's top-level configuration record.
type Config struct {
	MaxLineLength int                                         `toml:"max_line_length"`
	Ignores       Ignores                                     `toml:"ignores"`
	VariantPolicy map[literal.CommentVariant]VariantOverride `toml:"-"`
	// Checkers holds opaque per-checker configuration blocks, keyed by
	// checker name; docspell's own checkers don't interpret these, but a
	// driver plugging in additional checkers can.
	Checkers map[string]json.RawMessage `toml:"checkers"`

	// VariantPolicyRaw is the TOML-decodable form of VariantPolicy, since
	// CommentVariant isn't itself a TOML key type; Load translates between
	// the two.
	VariantPolicyRaw map[string]VariantOverride `toml:"variant_policy"`
}

// Default returns a Config with docspell's built-in defaults, used when no
// config file is present.
func Default() Config {
	return Config{
		MaxLineLength: 80,
	}
}

// Load reads and decodes path as a docspell TOML configuration file.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %q: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %q: %w", path, err)
	}
	cfg.VariantPolicy = make(map[literal.CommentVariant]VariantOverride, len(cfg.VariantPolicyRaw))
	for name, override := range cfg.VariantPolicyRaw {
		variant, ok := variantByName(name)
		if !ok {
			return Config{}, fmt.Errorf("config: %q: unknown comment variant %q", path, name)
		}
		cfg.VariantPolicy[variant] = override
	}
	return cfg, nil
}

func variantByName(name string) (literal.CommentVariant, bool) {
	for _, v := range []literal.CommentVariant{
		literal.TripleSlash,
		literal.DoubleSlashEM,
		literal.SlashSlash,
		literal.SlashAsterisk,
		literal.MacroDocEqString,
	} {
		if v.String() == name {
			return v, true
		}
	}
	return 0, false
}
