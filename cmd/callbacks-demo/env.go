package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	callbacks "github.com/glimte/callbacks-go"
	"github.com/glimte/callbacks-go/interceptors"
)

// demoEnv is what every example needs: where to print and how to decorate
type demoEnv struct {
	out     io.Writer
	options []callbacks.Option
}

// named returns the decoration options for a target called name
func (e *demoEnv) named(name string) []callbacks.Option {
	opts := make([]callbacks.Option, 0, len(e.options)+1)
	opts = append(opts, e.options...)
	return append(opts, callbacks.WithName(name))
}

// newDemoEnv builds the interceptor chain the flags ask for. The returned
// cleanup flushes spans and metrics and closes the broker connection.
func newDemoEnv(cmd *cobra.Command, v *viper.Viper) (*demoEnv, func(), error) {
	errOut := cmd.ErrOrStderr()

	level := slog.LevelInfo
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	env := &demoEnv{
		out:     cmd.OutOrStdout(),
		options: []callbacks.Option{callbacks.WithLogger(logger)},
	}
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	chain := interceptors.NewInterceptorChain(logger)
	if v.GetBool("verbose") {
		chain.Add(interceptors.NewLoggingInterceptor(logger))
	}

	if v.GetBool("metrics") {
		reg := prometheus.NewRegistry()
		collector, err := interceptors.NewPrometheusCollector(reg, "callbacks")
		if err != nil {
			return nil, nil, fmt.Errorf("create metrics collector: %w", err)
		}
		chain.Add(interceptors.NewMetricsInterceptor(collector))
		cleanups = append(cleanups, func() {
			if err := writeMetrics(errOut, reg); err != nil {
				logger.Error("failed to write metrics", "error", err)
			}
		})
	}

	if v.GetBool("trace") {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(errOut), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		chain.Add(interceptors.NewTracingInterceptor(cmd.Context(), tp.Tracer("callbacks-demo")))
		cleanups = append(cleanups, func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("failed to shut down tracer provider", "error", err)
			}
		})
	}

	if url := v.GetString("amqp-url"); url != "" {
		exchange := v.GetString("exchange")
		conn, ch, err := interceptors.DialChannel(url, exchange)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		chain.Add(interceptors.NewPublishingInterceptor(ch,
			interceptors.WithExchange(exchange),
			interceptors.WithPublishingLogger(logger),
		))
		cleanups = append(cleanups, func() { conn.Close() })
	}

	if chain.Len() > 0 {
		env.options = append(env.options, callbacks.WithInterceptors(chain))
	}
	return env, cleanup, nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
