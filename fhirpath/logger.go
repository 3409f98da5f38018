package fhirpath

import "log"

// Logger carries internal diagnostics — expression cache hits, provider
// call failures — distinct from the FHIRPath-level trace() output,
// which flows through provider.TraceProvider instead. A minimal
// Debugf/Warnf capability interface consumed by value, mirroring the
// teacher's small ai/core collaborator interfaces, rather than a
// global logger singleton.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// noopLogger discards everything; it is the Engine's default so
// callers never need a nil check.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Warnf(string, ...any)  {}

// stdLogger adapts the standard library's log.Logger to Logger, for
// callers that want visible diagnostics without pulling in a
// structured-logging dependency the teacher itself never imports.
type stdLogger struct{ l *log.Logger }

func (s stdLogger) Debugf(format string, args ...any) { s.l.Printf("DEBUG "+format, args...) }
func (s stdLogger) Warnf(format string, args ...any)  { s.l.Printf("WARN "+format, args...) }

// NewStdLogger wraps l (or the standard log package's default logger,
// if l is nil) as a Logger.
func NewStdLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}
	return stdLogger{l: l}
}
