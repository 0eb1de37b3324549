// Package interceptors observes calls made through a callback registry.
//
// An InterceptorChain is attached to a registry as an observer. It is not one
// of the registry's callbacks, so it is never listed or counted and removing
// callbacks leaves it in place. Each observed call produces a Call record
// that interceptors see
// twice: in Before, right before the target runs, and in After, once the call
// has a final outcome (success, recovered or failure).
//
// Built-in interceptors:
//   - LoggingInterceptor: logs calls with timing information through slog
//   - MetricsInterceptor: counts calls and outcomes and records durations
//   - TracingInterceptor: opens an OpenTelemetry span per call
//   - PublishingInterceptor: publishes a JSON CallEvent to a RabbitMQ exchange
//
// Example usage:
//
//	chain := interceptors.NewInterceptorChain(logger).
//		Add(interceptors.NewLoggingInterceptor(logger)).
//		Add(interceptors.NewMetricsInterceptor(collector))
//
//	attachment := chain.Attach(reg)
//	defer attachment.Detach()
//
// Interceptors run Before in the order they were added and After in reverse
// order. A call aborted by a failing post or exception callback ends as a
// failure carrying that callback's error; a call stopped by a failing pre
// callback never reaches Before.
package interceptors
