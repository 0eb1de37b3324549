package interceptors

import (
	"log/slog"
)

// LoggingInterceptor logs every call with timing information
type LoggingInterceptor struct {
	logger *slog.Logger
}

// NewLoggingInterceptor creates a new logging interceptor
func NewLoggingInterceptor(logger *slog.Logger) *LoggingInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return &LoggingInterceptor{logger: logger}
}

// Before implements Interceptor
func (i *LoggingInterceptor) Before(call *Call) {
	i.logger.Debug("calling target",
		"target", call.Target,
		"args", call.Args.String(),
		"depth", call.Depth,
	)
}

// After implements Interceptor
func (i *LoggingInterceptor) After(call *Call) {
	switch call.Outcome() {
	case OutcomeFailure:
		i.logger.Error("target failed",
			"target", call.Target,
			"duration", call.Duration(),
			"error", call.Err,
		)
	case OutcomeRecovered:
		i.logger.Warn("target error recovered by callback",
			"target", call.Target,
			"duration", call.Duration(),
			"error", call.Failures[0],
		)
	default:
		i.logger.Info("target returned",
			"target", call.Target,
			"duration", call.Duration(),
		)
	}
}

// Name implements Interceptor
func (i *LoggingInterceptor) Name() string {
	return "LoggingInterceptor"
}
