package registry

import (
	"log/slog"
	"reflect"
	"runtime"

	"github.com/google/uuid"

	"github.com/glimte/callbacks-go/contracts"
	"github.com/glimte/callbacks-go/internal/index"
)

// Target is the function a Registry wraps
type Target func(args contracts.Args) (any, error)

// Registry owns the callbacks of one target in one binding scope
type Registry struct {
	name    string
	target  Target
	method  bool
	parent  *Registry
	logger  *slog.Logger
	entries store
	indexes map[contracts.Phase]*index.PhaseIndex
	depth   int

	observers []Observer
}

// New creates a registry around target
func New(target Target, options ...Option) *Registry {
	if target == nil {
		panic("registry: nil target")
	}

	r := &Registry{
		target: target,
		logger: slog.Default(),
	}
	r.reset()

	for _, opt := range options {
		opt(r)
	}

	if r.name == "" {
		r.name = funcName(target)
	}

	return r
}

// Wrap creates a registry whose target is parent's whole pipeline.
// The new registry inherits the parent's name and method flag; its callbacks
// run outside the parent's.
func Wrap(parent *Registry, options ...Option) *Registry {
	base := []Option{WithName(parent.name), WithLogger(parent.logger)}
	if parent.method {
		base = append(base, AsMethod())
	}

	r := New(parent.Call, append(base, options...)...)
	r.parent = parent
	return r
}

func (r *Registry) reset() {
	r.entries = make(store)
	r.indexes = map[contracts.Phase]*index.PhaseIndex{
		contracts.PhasePre:       index.New(),
		contracts.PhasePost:      index.New(),
		contracts.PhaseException: index.New(),
	}
}

// Name returns the target name
func (r *Registry) Name() string {
	return r.name
}

// IsMethod reports whether the target takes a receiver as first argument
func (r *Registry) IsMethod() bool {
	return r.method
}

// Parent returns the registry this one wraps, or nil
func (r *Registry) Parent() *Registry {
	return r.parent
}

// Depth returns the number of invocations currently in progress.
// It is greater than one only while a callback or the target recurses.
func (r *Registry) Depth() int {
	return r.depth
}

// AddPreCallback registers callback to run before the target
func (r *Registry) AddPreCallback(callback any, options ...CallbackOption) (contracts.Label, error) {
	return r.add("add pre callback", contracts.PhasePre, callback, options)
}

// AddPostCallback registers callback to run after the target
func (r *Registry) AddPostCallback(callback any, options ...CallbackOption) (contracts.Label, error) {
	return r.add("add post callback", contracts.PhasePost, callback, options)
}

// AddCallback is an alias for AddPostCallback
func (r *Registry) AddCallback(callback any, options ...CallbackOption) (contracts.Label, error) {
	return r.AddPostCallback(callback, options...)
}

// AddExceptionCallback registers callback to run when the target fails
func (r *Registry) AddExceptionCallback(callback any, options ...CallbackOption) (contracts.Label, error) {
	return r.add("add exception callback", contracts.PhaseException, callback, options)
}

func (r *Registry) add(op string, phase contracts.Phase, callback any, options []CallbackOption) (contracts.Label, error) {
	cfg := callbackConfig{priority: 0}
	for _, opt := range options {
		opt(&cfg)
	}

	fail := func(err error) (contracts.Label, error) {
		return "", &contracts.RegistrationError{Op: op, Target: r.name, Label: cfg.label, Err: err}
	}

	priority, err := coercePriority(cfg.priority)
	if err != nil {
		return fail(err)
	}

	label := cfg.label
	if label == "" {
		label = contracts.Label(uuid.NewString())
	}

	if _, exists := r.entries[label]; exists {
		cfg.label = label
		return fail(contracts.ErrDuplicateLabel)
	}

	conv, err := contracts.ResolveConvention(phase, cfg.takesArgs, cfg.takesResult, cfg.handlesException)
	if err != nil {
		return fail(err)
	}

	invoke, err := bindCallback(conv, callback)
	if err != nil {
		return fail(err)
	}

	r.entries[label] = &entry{
		Entry: Entry{
			Label:      label,
			Function:   callback,
			Priority:   priority,
			Phase:      phase,
			Convention: conv,
		},
		invoke: invoke,
	}
	r.indexes[phase].Append(priority, label)

	r.logger.Debug("registered callback",
		"target", r.name,
		"label", label,
		"phase", phase,
		"priority", priority,
		"convention", conv,
	)

	return label, nil
}

// RemoveCallback unregisters the callback with label
func (r *Registry) RemoveCallback(label contracts.Label) error {
	e, ok := r.entries[label]
	if !ok {
		return &contracts.RemovalError{Target: r.name, Label: label, Err: contracts.ErrUnknownLabel}
	}

	r.indexes[e.Phase].Remove(e.Priority, label)
	delete(r.entries, label)

	r.logger.Debug("removed callback", "target", r.name, "label", label, "phase", e.Phase)
	return nil
}

// RemoveCallbacks unregisters the given labels. Labels that are not
// registered are reported together in a *contracts.BatchRemovalError after
// every other label has been removed.
//
// Without labels every callback is removed.
func (r *Registry) RemoveCallbacks(labels ...contracts.Label) error {
	if len(labels) == 0 {
		n := len(r.entries)
		r.reset()
		r.logger.Debug("removed all callbacks", "target", r.name, "count", n)
		return nil
	}

	var unknown []contracts.Label
	for _, label := range labels {
		if err := r.RemoveCallback(label); err != nil {
			unknown = append(unknown, label)
		}
	}

	if len(unknown) > 0 {
		return &contracts.BatchRemovalError{Target: r.name, Labels: unknown}
	}
	return nil
}

// NumCallbacks returns the number of callbacks registered on this registry
func (r *Registry) NumCallbacks() int {
	return len(r.entries)
}

// Has reports whether label is registered
func (r *Registry) Has(label contracts.Label) bool {
	_, ok := r.entries[label]
	return ok
}

// Callbacks returns a copy of the label to entry mapping
func (r *Registry) Callbacks() map[contracts.Label]Entry {
	out := make(map[contracts.Label]Entry, len(r.entries))
	for label, e := range r.entries {
		out[label] = e.Entry
	}
	return out
}

func funcName(fn any) string {
	if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
		return f.Name()
	}
	return "target"
}
