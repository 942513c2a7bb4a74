// Package config defines the reconciler's configuration types. These
// are pure data structures with no dependency on a config loader;
// internal/cli builds one with NewConfig and sets only StrictVerify,
// from its --strict-verify flag. No command loads a YAML file into it.
package config

import "github.com/quarto-dev/q2-sub003/pkg/reconcile"

// Flavor names a Markdown flavor. pkg/mdreader always parses GFM and
// does not take a Flavor.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat specifies how the CLI renders a reconciliation result.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// Config is the root configuration for the reconciler CLI.
type Config struct {
	// Flavor names the Markdown dialect; pkg/mdreader does not read it.
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// LogLevel is the charmbracelet/log level name ("debug", "info",
	// "warn", "error").
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// OutputFormat controls how a reconciliation's result is rendered.
	OutputFormat OutputFormat `mapstructure:"output_format" yaml:"output_format"`

	// StrictVerify, when true (the default), double-checks every
	// AlignKeepOriginal decision with reconcile.StructuralEqual before
	// committing it — the conservative hash-collision policy (DESIGN.md
	// decision 3). Setting it false trades that safety margin for speed
	// by setting reconcile.Options.SkipVerification.
	StrictVerify bool `mapstructure:"strict_verify" yaml:"strict_verify"`

	// TableCellRecursion names the reconcile.TableCellPolicy to use.
	// Only "strict" is implemented (DESIGN.md decision 1).
	TableCellRecursion string `mapstructure:"table_cell_recursion" yaml:"table_cell_recursion"`

	// Ignore contains glob patterns for document pairs to skip during
	// `batch` discovery.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Jobs is a worker count. `batch` does not read it: it reconciles
	// pairs one after another.
	Jobs int `mapstructure:"-" yaml:"-"`

	// EmitPlan is not read by any command; `reconcile` writes the plan
	// only when its --plan flag names a file.
	EmitPlan bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:             FlavorGFM,
		LogLevel:           "info",
		OutputFormat:       FormatText,
		StrictVerify:       true,
		TableCellRecursion: "strict",
		Jobs:               0,
	}
}

// ReconcileOptions translates the config into reconcile.Options.
func (c *Config) ReconcileOptions() reconcile.Options {
	return reconcile.Options{
		TableCellPolicy:  reconcile.TableCellStrict,
		SkipVerification: !c.StrictVerify,
	}
}
