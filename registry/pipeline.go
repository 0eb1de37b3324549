package registry

import (
	"github.com/glimte/callbacks-go/contracts"
)

// Invoke calls the target with positional arguments through the pipeline
func (r *Registry) Invoke(positional ...any) (any, error) {
	return r.Call(contracts.NewArgs(positional...))
}

// Call runs the pipeline: pre callbacks, the target, the exception relay when
// the target fails, then post callbacks. The target always receives args
// unchanged; for method registries callbacks receive args without the receiver.
//
// An error returned by a pre or post callback, or by a non-handling
// exception callback, aborts the invocation and is returned as is.
func (r *Registry) Call(args contracts.Args) (any, error) {
	r.depth++
	defer func() { r.depth-- }()

	cbArgs := args
	if r.method {
		cbArgs = args.Shift()
	}

	if err := r.runPhase(contracts.PhasePre, callInput{args: cbArgs}); err != nil {
		return nil, err
	}

	observers := r.observers
	for _, o := range observers {
		o.CallStarted(cbArgs)
	}

	result, err := r.run(args, cbArgs, observers)

	for _, o := range observers {
		o.CallFinished(result, err)
	}
	return result, err
}

// run is the part of Call the observers see
func (r *Registry) run(args, cbArgs contracts.Args, observers []Observer) (any, error) {
	result, err := r.target(args)
	if err != nil {
		result, err = r.relay(err, cbArgs, observers)
		if err != nil {
			return nil, err
		}
	}

	if err := r.runPhase(contracts.PhasePost, callInput{args: cbArgs, result: result}); err != nil {
		return nil, err
	}

	return result, nil
}

// snapshot returns the entries of phase in invocation order as they are now
func (r *Registry) snapshot(phase contracts.Phase) []*entry {
	labels := r.indexes[phase].Ordered()
	out := make([]*entry, 0, len(labels))
	for _, label := range labels {
		if e, ok := r.entries[label]; ok {
			out = append(out, e)
		}
	}
	return out
}

// live reports whether e is still the registration behind its label
func (r *Registry) live(e *entry) bool {
	cur, ok := r.entries[e.Label]
	return ok && cur == e
}

func (r *Registry) runPhase(phase contracts.Phase, in callInput) error {
	for _, e := range r.snapshot(phase) {
		if !r.live(e) {
			continue
		}
		if _, err := e.invoke(in); err != nil {
			return err
		}
	}
	return nil
}
