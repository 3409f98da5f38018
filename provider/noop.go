package provider

import "context"

// NoopTrace discards every trace() call. An engine built without a
// TraceProvider has none at all; trace() then passes its input through
// without reporting it anywhere.
type NoopTrace struct{}

func (NoopTrace) Trace(ctx context.Context, name string, values any) {}

var _ TraceProvider = NoopTrace{}
