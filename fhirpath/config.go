package fhirpath

import (
	"errors"

	"github.com/fhirpath-go/fhirpath/evalctx"
	"github.com/fhirpath-go/fhirpath/provider"
)

// Config holds an Engine's validated configuration, in the same spirit
// as the teacher's StreamParserConfig/SchemaConfig: a plain struct
// with a Default constructor and a validate method, built up by
// EngineOption functions rather than set directly.
type Config struct {
	Providers     evalctx.Providers
	Logger        Logger
	CacheCapacity int // 0 means unbounded
}

// DefaultConfig returns the zero-provider configuration: no
// ModelProvider/TerminologyProvider/ValidationProvider/TraceProvider,
// a no-op Logger, and an unbounded compiled-expression cache.
func DefaultConfig() Config {
	return Config{Logger: noopLogger{}}
}

func (c *Config) validate() error {
	if c.CacheCapacity < 0 {
		return errors.New("fhirpath: CacheCapacity must not be negative")
	}
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
	return nil
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Config)

// WithModelProvider attaches the ModelProvider consulted for type
// navigation and is/as/ofType resolution.
func WithModelProvider(p provider.ModelProvider) EngineOption {
	return func(c *Config) { c.Providers.Model = p }
}

// WithTerminologyProvider attaches the provider consumed by memberOf,
// subsumes, subsumedBy, validateVS, validateCS, lookup, translate, and
// expand. Without one, those functions return empty.
func WithTerminologyProvider(p provider.TerminologyProvider) EngineOption {
	return func(c *Config) { c.Providers.Terminology = p }
}

// WithValidationProvider attaches the provider consumed by
// conformsTo(profile). Without one it returns empty.
func WithValidationProvider(p provider.ValidationProvider) EngineOption {
	return func(c *Config) { c.Providers.Validation = p }
}

// WithTraceProvider attaches the collaborator that receives trace()
// output. Without one, trace() passes its focus through unchanged and
// discards the logged value.
func WithTraceProvider(p provider.TraceProvider) EngineOption {
	return func(c *Config) { c.Providers.Trace = p }
}

// WithLogger overrides the Engine's internal diagnostics logger.
func WithLogger(l Logger) EngineOption {
	return func(c *Config) { c.Logger = l }
}

// WithCacheCapacity bounds the number of distinct compiled expressions
// the Engine keeps; 0 (the default) means unbounded. Once the bound is
// reached, Compile stops caching new entries rather than evicting —
// callers expecting eviction should size this generously or bypass the
// cache with a fresh Engine per workload.
func WithCacheCapacity(n int) EngineOption {
	return func(c *Config) { c.CacheCapacity = n }
}
