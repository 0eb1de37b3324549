package binding

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"
	"weak"

	"github.com/glimte/callbacks-go/contracts"
	"github.com/glimte/callbacks-go/registry"
)

// Func is a method body: the receiver followed by the remaining arguments
type Func[T any] func(recv *T, args contracts.Args) (any, error)

// Method is a method that supports callbacks
type Method[T any] struct {
	class   *registry.Registry
	options []registry.Option

	// guarded because cleanups run on the runtime's cleanup goroutine
	mu        sync.Mutex
	instances map[weak.Pointer[T]]*registry.Registry
}

// ErrZeroSizeReceiver is the panic value of New for receiver types without
// size: all their values may share one address, so instances cannot be told apart
var ErrZeroSizeReceiver = errors.New("binding: receiver type has zero size")

// New wraps fn. Options apply to the class-level registry and are inherited
// by instance registries.
//
// New panics if T has zero size (struct{}, [0]int and the like); give the
// type a field to bind callbacks per instance.
func New[T any](fn Func[T], options ...registry.Option) *Method[T] {
	if fn == nil {
		panic("binding: nil method")
	}
	if unsafe.Sizeof(*new(T)) == 0 {
		panic(fmt.Errorf("%w: %T", ErrZeroSizeReceiver, *new(T)))
	}

	target := func(args contracts.Args) (any, error) {
		recv, ok := args.Arg(0).(*T)
		if !ok || recv == nil {
			return nil, fmt.Errorf("%w: expected *%T as first argument, got %T",
				contracts.ErrMissingReceiver, *new(T), args.Arg(0))
		}
		return fn(recv, args.Shift())
	}

	opts := append([]registry.Option{registry.AsMethod()}, options...)
	return &Method[T]{
		class:     registry.New(target, opts...),
		options:   options,
		instances: make(map[weak.Pointer[T]]*registry.Registry),
	}
}

// Class returns the class-level registry. Its callbacks run for every receiver.
func (m *Method[T]) Class() *registry.Registry {
	return m.class
}

// Bind returns the method bound to recv, creating the instance registry on
// first use. Bind panics if recv is nil; use Class for class-level access.
//
// The instance registry is dropped once recv is collected, but the table
// holds the registry itself strongly: an instance callback that captures
// recv keeps recv alive, and with it the registry. Remove such callbacks
// when the receiver is done, or capture something other than recv.
func (m *Method[T]) Bind(recv *T) *Bound[T] {
	if recv == nil {
		panic("binding: Bind called with nil receiver")
	}

	return &Bound[T]{Registry: m.instance(recv), recv: recv}
}

// Call invokes the method on recv through both registries
func (m *Method[T]) Call(recv *T, args contracts.Args) (any, error) {
	return m.Bind(recv).Call(args)
}

// Instances returns the number of live instance registries
func (m *Method[T]) Instances() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instances)
}

func (m *Method[T]) instance(recv *T) *registry.Registry {
	key := weak.Make(recv)

	m.mu.Lock()
	defer m.mu.Unlock()

	if reg, ok := m.instances[key]; ok {
		return reg
	}

	// the instance registry must not reference recv, or it would never be collected
	reg := registry.Wrap(m.class, m.options...)
	m.instances[key] = reg
	runtime.AddCleanup(recv, m.forget, key)

	return reg
}

func (m *Method[T]) forget(key weak.Pointer[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.instances, key)
}
