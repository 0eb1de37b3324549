package binding

import (
	"github.com/glimte/callbacks-go/contracts"
	"github.com/glimte/callbacks-go/registry"
)

// Bound is a method bound to one receiver.
// The embedded registry holds the instance-level callbacks.
type Bound[T any] struct {
	*registry.Registry
	recv *T
}

// Receiver returns the bound receiver
func (b *Bound[T]) Receiver() *T {
	return b.recv
}

// Call invokes the method with args; the receiver is supplied automatically
func (b *Bound[T]) Call(args contracts.Args) (any, error) {
	return b.Registry.Call(args.Prepend(b.recv))
}

// Invoke invokes the method with positional arguments
func (b *Bound[T]) Invoke(positional ...any) (any, error) {
	return b.Call(contracts.NewArgs(positional...))
}

// NumCallbacks returns the class-level and the instance-level callback counts
func (b *Bound[T]) NumCallbacks() (classLevel, instanceLevel int) {
	return b.Registry.Parent().NumCallbacks(), b.Registry.NumCallbacks()
}
