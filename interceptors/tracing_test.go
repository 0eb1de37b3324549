package interceptors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/glimte/callbacks-go/contracts"
	"github.com/glimte/callbacks-go/registry"
)

func newTestTracer(t *testing.T) (*TracingInterceptor, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewTracingInterceptor(context.Background(), tp.Tracer("callbacks-test")), sr
}

func TestTracingInterceptor(t *testing.T) {
	t.Run("one span per call", func(t *testing.T) {
		tracer, sr := newTestTracer(t)
		reg := newFoo(t)
		NewInterceptorChain(nil).Add(tracer).Attach(reg)

		_, err := reg.Invoke("ok")
		require.NoError(t, err)

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "call foo", spans[0].Name())
		assert.Equal(t, codes.Ok, spans[0].Status().Code)
		assert.False(t, spans[0].Parent().IsValid())
	})

	t.Run("failures set error status", func(t *testing.T) {
		tracer, sr := newTestTracer(t)
		reg := newFoo(t)
		NewInterceptorChain(nil).Add(tracer).Attach(reg)

		_, err := reg.Invoke("fail")
		require.Error(t, err)

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Equal(t, "boom", spans[0].Status().Description)

		var names []string
		for _, ev := range spans[0].Events() {
			names = append(names, ev.Name)
		}
		assert.Contains(t, names, EventTargetFailed)
	})

	t.Run("recursive calls become child spans", func(t *testing.T) {
		tracer, sr := newTestTracer(t)

		var reg *registry.Registry
		reg = registry.New(func(args contracts.Args) (any, error) {
			if n := args.Arg(0).(int); n > 0 {
				return reg.Invoke(n - 1)
			}
			return 0, nil
		}, registry.WithName("countdown"))
		NewInterceptorChain(nil).Add(tracer).Attach(reg)

		_, err := reg.Invoke(1)
		require.NoError(t, err)

		spans := sr.Ended()
		require.Len(t, spans, 2)
		inner, outer := spans[0], spans[1]
		assert.Equal(t, outer.SpanContext().SpanID(), inner.Parent().SpanID())
		assert.Equal(t, outer.SpanContext().TraceID(), inner.SpanContext().TraceID())
	})

	t.Run("After for an unknown call is ignored", func(t *testing.T) {
		tracer, sr := newTestTracer(t)
		tracer.After(&Call{Target: "foo"})
		assert.Empty(t, sr.Ended())
	})
}
