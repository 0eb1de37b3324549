package interceptors

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/glimte/callbacks-go/contracts"
	"github.com/glimte/callbacks-go/registry"
)

// ErrNotAttached is returned when detaching a chain that is no longer attached
var ErrNotAttached = errors.New("interceptors: chain not attached")

// Outcome classifies how an observed call ended
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeRecovered Outcome = "recovered"
	OutcomeFailure   Outcome = "failure"
)

// Call describes one invocation observed by a Chain
type Call struct {
	Target   string
	Args     contracts.Args
	Depth    int
	Started  time.Time
	Finished time.Time
	Result   any
	Err      error   // what the caller received, nil when the target succeeded or was recovered
	Failures []error // target error first, then every error a handler replaced it with
}

// Duration returns how long the call took
func (c *Call) Duration() time.Duration {
	return c.Finished.Sub(c.Started)
}

// Outcome classifies the call
func (c *Call) Outcome() Outcome {
	switch {
	case c.Err != nil:
		return OutcomeFailure
	case len(c.Failures) > 0:
		return OutcomeRecovered
	default:
		return OutcomeSuccess
	}
}

// Interceptor observes calls made through a registry
type Interceptor interface {
	// Before is called after the pre callbacks, right before the target
	Before(call *Call)

	// After is called once the call has a final outcome
	After(call *Call)

	// Name returns the interceptor name for logging and debugging
	Name() string
}

// InterceptorFunc is a function adapter for Interceptor
type InterceptorFunc struct {
	name   string
	before func(call *Call)
	after  func(call *Call)
}

// NewInterceptorFunc creates a new function-based interceptor. Either function may be nil.
func NewInterceptorFunc(name string, before, after func(call *Call)) *InterceptorFunc {
	return &InterceptorFunc{name: name, before: before, after: after}
}

// Before implements Interceptor
func (i *InterceptorFunc) Before(call *Call) {
	if i.before != nil {
		i.before(call)
	}
}

// After implements Interceptor
func (i *InterceptorFunc) After(call *Call) {
	if i.after != nil {
		i.after(call)
	}
}

// Name implements Interceptor
func (i *InterceptorFunc) Name() string {
	return i.name
}

// InterceptorChain manages a chain of interceptors
type InterceptorChain struct {
	interceptors []Interceptor
	logger       *slog.Logger
}

// NewInterceptorChain creates a new interceptor chain
func NewInterceptorChain(logger *slog.Logger) *InterceptorChain {
	if logger == nil {
		logger = slog.Default()
	}

	return &InterceptorChain{
		interceptors: make([]Interceptor, 0),
		logger:       logger,
	}
}

// Add adds an interceptor to the chain
func (c *InterceptorChain) Add(interceptor Interceptor) *InterceptorChain {
	c.interceptors = append(c.interceptors, interceptor)
	return c
}

// Len returns the number of interceptors in the chain
func (c *InterceptorChain) Len() int {
	return len(c.interceptors)
}

// Attach starts observing r. Before hooks run in chain order, After hooks in
// reverse order.
//
// The chain is a registry observer, not a set of callbacks: it does not show
// up in listings and survives RemoveCallbacks. Calls stopped by a failing
// pre callback are never observed.
func (c *InterceptorChain) Attach(r *registry.Registry) *Attachment {
	a := &Attachment{
		chain:    c,
		registry: r,
	}
	r.AddObserver(a)

	c.logger.Debug("attached interceptor chain",
		"target", r.Name(),
		"interceptors", len(c.interceptors),
	)

	return a
}

var _ registry.Observer = (*Attachment)(nil)

// Attachment is a chain attached to one registry
type Attachment struct {
	chain    *InterceptorChain
	registry *registry.Registry
	frames   []*Call
}

// Detach stops observing the registry
func (a *Attachment) Detach() error {
	if !a.registry.RemoveObserver(a) {
		return fmt.Errorf("%w: %s", ErrNotAttached, a.registry.Name())
	}
	a.chain.logger.Debug("detached interceptor chain", "target", a.registry.Name())
	return nil
}

// CallStarted implements registry.Observer
func (a *Attachment) CallStarted(args contracts.Args) {
	call := &Call{
		Target:  a.registry.Name(),
		Args:    args,
		Depth:   a.registry.Depth(),
		Started: time.Now(),
	}
	a.frames = append(a.frames, call)

	for _, i := range a.chain.interceptors {
		i.Before(call)
	}
}

// CallFailed implements registry.Observer
func (a *Attachment) CallFailed(err error) {
	if n := len(a.frames); n > 0 {
		call := a.frames[n-1]
		call.Failures = append(call.Failures, err)
	}
}

// CallFinished implements registry.Observer
func (a *Attachment) CallFinished(result any, err error) {
	n := len(a.frames)
	if n == 0 {
		return
	}
	call := a.frames[n-1]
	a.frames = a.frames[:n-1]

	call.Finished = time.Now()
	call.Result = result
	call.Err = err

	for i := len(a.chain.interceptors) - 1; i >= 0; i-- {
		a.chain.interceptors[i].After(call)
	}
}
