package registry

import (
	"github.com/glimte/callbacks-go/contracts"
)

// Observer watches the invocations of a registry. Observers are not
// callbacks: they have no label, are not counted or listed, and survive
// RemoveCallbacks.
//
// For every invocation that gets past its pre callbacks an observer sees
// CallStarted, zero or more CallFailed and exactly one CallFinished, in
// that order. Invocations nested inside the target are reported between
// the outer CallStarted and CallFinished.
type Observer interface {
	// CallStarted is called after the pre callbacks, right before the target.
	// args are the arguments callbacks receive.
	CallStarted(args contracts.Args)

	// CallFailed is called with the target error and with every different
	// error a handling exception callback replaces it with
	CallFailed(err error)

	// CallFinished is called with what the caller receives, after the post
	// callbacks. err is also set when an exception or post callback aborted
	// the invocation.
	CallFinished(result any, err error)
}

// AddObserver registers o. Adding the same observer twice has no effect.
func (r *Registry) AddObserver(o Observer) {
	for _, existing := range r.observers {
		if existing == o {
			return
		}
	}
	r.observers = append(r.observers, o)
	r.logger.Debug("added observer", "target", r.name, "observers", len(r.observers))
}

// RemoveObserver unregisters o and reports whether it was registered
func (r *Registry) RemoveObserver(o Observer) bool {
	for i, existing := range r.observers {
		if existing == o {
			// copy so invocations in progress keep their snapshot intact
			observers := make([]Observer, 0, len(r.observers)-1)
			observers = append(observers, r.observers[:i]...)
			r.observers = append(observers, r.observers[i+1:]...)
			r.logger.Debug("removed observer", "target", r.name, "observers", len(r.observers))
			return true
		}
	}
	return false
}

// NumObservers returns the number of registered observers
func (r *Registry) NumObservers() int {
	return len(r.observers)
}
