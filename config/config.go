// Package config implements the query engine's configuration: an optional
// YAML file, overridable by environment variables, following the teacher's
// own `boolEnv` idiom (go-tony/debug/debug.go) and its direct use of
// github.com/goccy/go-yaml for file-based config (go-tony/cmd/o/eval.go).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Config carries the engine's tunables. Every field has a zero-value
// default that is safe to run with; Default() differs from the zero Config
// only in turning SanityChecks on.
type Config struct {
	// SanityChecks enables the possibly-expensive internal consistency
	// assertions in dwarfgraph's parent index (mirrors corefile's
	// sanityChecks constant, but made runtime-configurable rather than
	// a compile-time const).
	SanityChecks bool `yaml:"sanityChecks"`

	// Color, when non-nil, forces dwgrepq's colorized result output on or
	// off (see ResolveColor). When nil, the output writer's TTY check
	// decides. internal/dbg does not read it.
	Color *bool `yaml:"color"`

	// Verbosity is the diagnostic tracing level, wired into
	// internal/dbg.SetLevel: 0 leaves tracing driven solely by the
	// DWGREPQ_DEBUG_OP/EVAL/PARENT_INDEX env vars, 1 additionally enables
	// operator tracing, 2 also enables evaluator tracing, and 3 also
	// enables parent-index tracing.
	Verbosity int `yaml:"verbosity"`

	// DomainOverrides aliases an already-registered builtin name to an
	// additional name, without touching the builtin registry code. Keys
	// are the canonical name builtin.RegisterCore/RegisterAttributeSugar/
	// RegisterTagSugar/RegisterFormSugar produces (e.g. "@AT_name"),
	// values are the alias to register alongside it (e.g. "@AT_symbol").
	DomainOverrides map[string]string `yaml:"domainOverrides"`
}

// Default returns the engine's zero-config defaults.
func Default() *Config {
	return &Config{
		SanityChecks: true,
	}
}

// Load reads path as YAML into a fresh Config seeded with Default(), then
// applies environment variable overrides. An empty path skips the file
// read and only applies overrides to the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %q: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := boolEnv("DWGREPQ_SANITY_CHECKS"); ok {
		cfg.SanityChecks = v
	}
	if v, ok := boolEnv("DWGREPQ_COLOR"); ok {
		cfg.Color = &v
	}
	if v := os.Getenv("DWGREPQ_VERBOSITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Verbosity = n
		}
	}
}

// boolEnv reports the parsed value of name and whether it was set at all,
// unlike the teacher's debug.boolEnv which collapses "unset" and "false"
// together — config needs to tell "not overridden" from "overridden to
// false" so a YAML-set true isn't silently clobbered by an absent env var.
func boolEnv(name string) (bool, bool) {
	v := os.Getenv(name)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// SanityChecksEnabled reports whether cfg enables sanity checks, treating
// a nil cfg as Default().
func SanityChecksEnabled(cfg *Config) bool {
	if cfg == nil {
		return true
	}
	return cfg.SanityChecks
}

// ResolveColor reports whether color output should be used, given cfg's
// override (if any) and the ambient terminal/default decision useTTY
// makes when cfg leaves it unset.
func ResolveColor(cfg *Config, useTTY func() bool) bool {
	if cfg != nil && cfg.Color != nil {
		return *cfg.Color
	}
	return useTTY()
}
