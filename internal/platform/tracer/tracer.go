// Package tracer defines a minimal tracing interface so components can emit
// spans without depending on OpenTelemetry APIs throughout the codebase.
package tracer

import "context"

// Attribute is a key/value pair attached to a span.
type Attribute struct {
	Key   string
	Value string
}

// String builds a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Span represents an in-flight trace span.
type Span interface {
	// End completes the span, recording err when non-nil.
	End(err error)
	// SetAttributes adds attributes to the span.
	SetAttributes(attrs ...Attribute)
}

// Tracer creates spans.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// NewNoop returns a tracer that records nothing. Used as the default when
// tracing is not configured and in tests.
func NewNoop() Tracer {
	return noopTracer{}
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error)                  {}
func (noopSpan) SetAttributes(...Attribute) {}
