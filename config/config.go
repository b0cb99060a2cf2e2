// Package config provides the configuration of the SI lowering backend.
package config

import (
	"runtime"

	"github.com/xyproto/env/v2"
)

// Environment variables read by FromEnv.
const (
	EnvNoSourceMods = "SIGEN_NO_SOURCE_MODS"
	EnvNoFoldClamp  = "SIGEN_NO_FOLD_CLAMP"
	EnvWorkers      = "SIGEN_WORKERS"
	EnvTrace        = "SIGEN_TRACE"
	EnvReportDir    = "SIGEN_REPORT_DIR"
)

// Config controls how pseudo-ops are legalized and how many functions are
// lowered at once.
type Config struct {
	// SourceModifiers lets legalizers use VOP3 abs/neg/clamp bits instead of
	// explicit instructions.
	SourceModifiers bool

	// FoldClamp lets the clamp legalizer set the saturate bit on the
	// instruction producing its source.
	FoldClamp bool

	// Workers bounds the number of functions lowered in parallel.
	Workers int

	// Trace logs every conversion at trace level.
	Trace bool

	// ReportDir receives one lowering report per function. Empty disables it.
	ReportDir string
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		SourceModifiers: true,
		FoldClamp:       true,
		Workers:         runtime.NumCPU(),
	}
}

// Builder can build configurations.
type Builder struct {
	cfg Config
}

// NewBuilder creates a builder seeded with Default.
func NewBuilder() Builder {
	return Builder{cfg: Default()}
}

// WithSourceModifiers enables or disables VOP3 source modifiers.
func (b Builder) WithSourceModifiers(enabled bool) Builder {
	b.cfg.SourceModifiers = enabled
	return b
}

// WithFoldClamp enables or disables folding clamps into their producer.
func (b Builder) WithFoldClamp(enabled bool) Builder {
	b.cfg.FoldClamp = enabled
	return b
}

// WithWorkers sets the number of parallel lowering workers.
func (b Builder) WithWorkers(n int) Builder {
	if n < 1 {
		panic("need at least 1 worker")
	}
	b.cfg.Workers = n
	return b
}

// WithTrace enables conversion tracing.
func (b Builder) WithTrace(enabled bool) Builder {
	b.cfg.Trace = enabled
	return b
}

// WithReportDir sets the directory lowering reports are saved to.
func (b Builder) WithReportDir(dir string) Builder {
	b.cfg.ReportDir = dir
	return b
}

// Build returns the configuration.
func (b Builder) Build() Config {
	return b.cfg
}

// FromEnv applies environment overrides on top of base.
func FromEnv(base Config) Config {
	cfg := base

	if env.Has(EnvNoSourceMods) {
		cfg.SourceModifiers = !env.Bool(EnvNoSourceMods)
	}
	if env.Has(EnvNoFoldClamp) {
		cfg.FoldClamp = !env.Bool(EnvNoFoldClamp)
	}
	if n := env.Int(EnvWorkers, cfg.Workers); n > 0 {
		cfg.Workers = n
	}
	if env.Has(EnvTrace) {
		cfg.Trace = env.Bool(EnvTrace)
	}
	cfg.ReportDir = env.Str(EnvReportDir, cfg.ReportDir)

	return cfg
}
