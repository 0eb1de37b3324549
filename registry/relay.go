package registry

import (
	"errors"

	"github.com/glimte/callbacks-go/contracts"
)

// outcome is the relay state: either a value or an unresolved error
type outcome struct {
	value any
	err   error
}

func (o outcome) resolved() bool {
	return o.err == nil
}

// relay passes the target's error through the exception callbacks.
//
// Handling callbacks see the current error; returning normally resolves it,
// returning an error replaces it for the next handler. Once resolved the
// remaining handling callbacks are skipped. Non-handling callbacks always
// run and do not touch the state.
//
// observers are told about the target error and every replacement.
func (r *Registry) relay(targetErr error, args contracts.Args, observers []Observer) (any, error) {
	state := outcome{err: targetErr}
	for _, o := range observers {
		o.CallFailed(targetErr)
	}

	for _, e := range r.snapshot(contracts.PhaseException) {
		if !r.live(e) {
			continue
		}

		if !e.Convention.HandlesException() {
			if _, err := e.invoke(callInput{args: args}); err != nil {
				return nil, err
			}
			continue
		}

		if state.resolved() {
			continue
		}

		value, err := e.invoke(callInput{args: args, err: state.err})
		if err != nil {
			if !errors.Is(err, state.err) {
				for _, o := range observers {
					o.CallFailed(err)
				}
			}
			state = outcome{err: err}
		} else {
			state = outcome{value: value}
		}
	}

	return state.value, state.err
}
