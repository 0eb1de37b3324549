package registry

import (
	"log/slog"

	"github.com/glimte/callbacks-go/contracts"
)

// Option configures a Registry
type Option func(*Registry)

// WithName sets the target name used in errors, logs and listings
func WithName(name string) Option {
	return func(r *Registry) {
		r.name = name
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// AsMethod marks the target as a method: the first positional argument is
// the receiver and is not forwarded to callbacks
func AsMethod() Option {
	return func(r *Registry) {
		r.method = true
	}
}

// CallbackOption configures a single registration
type CallbackOption func(*callbackConfig)

type callbackConfig struct {
	priority         any
	label            contracts.Label
	takesArgs        bool
	takesResult      bool
	handlesException bool
}

// WithPriority sets the priority. Any Go number or numeric string is accepted.
func WithPriority(priority any) CallbackOption {
	return func(c *callbackConfig) {
		c.priority = priority
	}
}

// WithLabel sets the label instead of generating one
func WithLabel(label contracts.Label) CallbackOption {
	return func(c *callbackConfig) {
		c.label = label
	}
}

// TakesTargetArgs forwards the target's arguments to the callback
func TakesTargetArgs() CallbackOption {
	return func(c *callbackConfig) {
		c.takesArgs = true
	}
}

// TakesTargetResult forwards the target's result to a post callback
func TakesTargetResult() CallbackOption {
	return func(c *callbackConfig) {
		c.takesResult = true
	}
}

// HandlesException makes an exception callback responsible for the in-flight
// error: it receives the error and resolves it by returning normally or
// replaces it by returning an error
func HandlesException() CallbackOption {
	return func(c *callbackConfig) {
		c.handlesException = true
	}
}
