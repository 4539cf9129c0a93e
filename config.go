// Package ctdiff is the external interface (§6) to the constant-time
// diff engine: a Config builder, compare_* convenience wrappers around
// the engine's Run, and DiffResult accessors.
//
// Mirrors the teacher's functional-options builder (diffx's `Option
// func(*options)` / `defaultOptions()`) at the outer layer, the same
// way security.NewConfig mirrors it at the policy layer — two option
// vocabularies at two layers, same as the teacher's public Option plus
// its internal histogramOptions.
package ctdiff

import "github.com/tanctl/ctdiff/security"

// SecurityLevel selects a named bundle of security.Config defaults
// (§6): Maximum<->Strict/4KB, Balanced<->Moderate/256KB, Fast<->Basic/1MB.
type SecurityLevel int

const (
	Maximum SecurityLevel = iota
	Balanced
	Fast
)

func (l SecurityLevel) String() string {
	switch l {
	case Maximum:
		return "Maximum"
	case Balanced:
		return "Balanced"
	case Fast:
		return "Fast"
	default:
		return "Unknown"
	}
}

// Config is the outer, library-level configuration of §6. OutputFormat,
// ContextLines, and Color are opaque to the core — carried only for
// external formatters/CLIs to read back, never inspected by
// compare_tokens or the engine.
type Config struct {
	SecurityLevel SecurityLevel
	OutputFormat  string
	ContextLines  int
	MaxFileSize   int64
	Color         bool

	sec *security.Config
}

// Option configures a Config under construction.
type Option func(*options)

type options struct {
	securityLevel    SecurityLevel
	outputFormat     string
	contextLines     int
	maxFileSize      int64
	color            bool
	securityOverride *security.Config
}

func defaultOptions() *options {
	return &options{
		securityLevel: Fast,
		outputFormat:  "unified",
		contextLines:  3,
		maxFileSize:   1 << 20,
	}
}

// WithSecurityLevel selects one of the named security bundles.
func WithSecurityLevel(level SecurityLevel) Option {
	return func(o *options) { o.securityLevel = level }
}

// WithOutputFormat sets the opaque output-format tag read by external
// formatters.
func WithOutputFormat(format string) Option {
	return func(o *options) { o.outputFormat = format }
}

// WithContextLines sets the opaque context-line count read by external
// formatters.
func WithContextLines(n int) Option {
	return func(o *options) { o.contextLines = n }
}

// WithMaxFileSize sets the byte ceiling compare_files refuses to read
// past.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithColor sets the opaque color-output flag read by external
// formatters.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = enabled }
}

// WithSecurityConfig overrides the named SecurityLevel's defaults with
// a caller-built security.Config.
func WithSecurityConfig(sec *security.Config) Option {
	return func(o *options) { o.securityOverride = sec }
}

// Configure builds a Config, resolving SecurityLevel to a
// security.Config unless a caller-supplied override was given.
func Configure(opts ...Option) (*Config, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	sec := o.securityOverride
	if sec == nil {
		var err error
		sec, err = securityConfigForLevel(o.securityLevel)
		if err != nil {
			return nil, err
		}
	}

	return &Config{
		SecurityLevel: o.securityLevel,
		OutputFormat:  o.outputFormat,
		ContextLines:  o.contextLines,
		MaxFileSize:   o.maxFileSize,
		Color:         o.color,
		sec:           sec,
	}, nil
}

// securityConfigForLevel returns the default security.Config for a
// named level, per §6: Maximum<->Strict/4KB, Balanced<->Moderate/256KB,
// Fast<->Basic/1MB.
func securityConfigForLevel(level SecurityLevel) (*security.Config, error) {
	switch level {
	case Maximum:
		return security.NewConfig(
			security.WithMaxInputSize(4096),
			security.WithPadding(4096),
			security.WithTimingProtection(security.Strict),
		)
	case Balanced:
		return security.NewConfig(
			security.WithMaxInputSize(256*1024),
			security.WithTimingProtection(security.Moderate),
		)
	case Fast:
		return security.NewConfig(
			security.WithMaxInputSize(1<<20),
			security.WithTimingProtection(security.Basic),
		)
	default:
		return nil, securityErrorf("unknown security level %d", int(level))
	}
}
