package interceptors

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys
const (
	AttrTarget   = "callbacks.target"
	AttrDepth    = "callbacks.depth"
	AttrArgs     = "callbacks.args"
	AttrOutcome  = "callbacks.outcome"
	AttrFailures = "callbacks.failures"

	// EventTargetFailed is added to the span once per error seen by the exception chain
	EventTargetFailed = "callbacks.target_failed"
)

// TracingInterceptor opens one span per call. Calls nested inside another
// observed call (recursion, or a target that calls another decorated target)
// become child spans.
type TracingInterceptor struct {
	tracer trace.Tracer
	base   context.Context

	mu     sync.Mutex
	active []tracedCall
}

type tracedCall struct {
	call *Call
	ctx  context.Context
	span trace.Span
}

// NewTracingInterceptor creates a tracing interceptor. Root spans are started
// from ctx, which may carry a parent span.
func NewTracingInterceptor(ctx context.Context, tracer trace.Tracer) *TracingInterceptor {
	if ctx == nil {
		ctx = context.Background()
	}
	return &TracingInterceptor{tracer: tracer, base: ctx}
}

// Before implements Interceptor
func (i *TracingInterceptor) Before(call *Call) {
	i.mu.Lock()
	defer i.mu.Unlock()

	parent := i.base
	if n := len(i.active); n > 0 {
		parent = i.active[n-1].ctx
	}

	ctx, span := i.tracer.Start(parent, "call "+call.Target,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(call.Started),
	)
	span.SetAttributes(
		attribute.String(AttrTarget, call.Target),
		attribute.Int(AttrDepth, call.Depth),
		attribute.String(AttrArgs, call.Args.String()),
	)

	i.active = append(i.active, tracedCall{call: call, ctx: ctx, span: span})
}

// After implements Interceptor
func (i *TracingInterceptor) After(call *Call) {
	i.mu.Lock()
	defer i.mu.Unlock()

	idx := -1
	for j := len(i.active) - 1; j >= 0; j-- {
		if i.active[j].call == call {
			idx = j
			break
		}
	}
	if idx < 0 {
		return
	}
	span := i.active[idx].span
	i.active = append(i.active[:idx], i.active[idx+1:]...)

	for _, err := range call.Failures {
		span.AddEvent(EventTargetFailed, trace.WithAttributes(
			attribute.String("error", err.Error()),
		))
	}

	span.SetAttributes(
		attribute.String(AttrOutcome, string(call.Outcome())),
		attribute.Int(AttrFailures, len(call.Failures)),
	)

	if call.Err != nil {
		span.RecordError(call.Err)
		span.SetStatus(codes.Error, call.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End(trace.WithTimestamp(call.Finished))
}

// Name implements Interceptor
func (i *TracingInterceptor) Name() string {
	return "TracingInterceptor"
}
