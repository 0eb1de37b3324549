package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimte/callbacks-go/contracts"
)

var (
	errFoo = errors.New("foo error")
	errC5  = errors.New("c5 error")
)

type exceptionFixture struct {
	reg        *Registry
	order      []string
	calledWith []any
}

func newExceptionFixture() *exceptionFixture {
	return &exceptionFixture{
		reg: New(func(args contracts.Args) (any, error) {
			return nil, errFoo
		}, WithName("foo")),
	}
}

func (f *exceptionFixture) c1() {
	f.order = append(f.order, "c1")
}

// c2 inspects the error and raises it again
func (f *exceptionFixture) c2(err error) (any, error) {
	f.calledWith = append(f.calledWith, err)
	f.order = append(f.order, "c2")
	return nil, err
}

func (f *exceptionFixture) c3(args contracts.Args) {
	f.calledWith = append(f.calledWith, args)
	f.order = append(f.order, "c3")
}

func (f *exceptionFixture) c4(err error, args contracts.Args) (any, error) {
	f.calledWith = append(f.calledWith, []any{err, args})
	f.order = append(f.order, "c4")
	return "c4 returned this", nil
}

func (f *exceptionFixture) c4NoArgs(err error) (any, error) {
	return f.c4(err, contracts.Args{})
}

func (f *exceptionFixture) c5(err error, args contracts.Args) (any, error) {
	f.calledWith = append(f.calledWith, []any{err, args})
	f.order = append(f.order, "c5")
	return nil, errC5
}

func (f *exceptionFixture) c5NoArgs(err error) (any, error) {
	return f.c5(err, contracts.Args{})
}

func callArgs() contracts.Args {
	return contracts.NewArgs(1).With("baz", 2)
}

func TestExceptionRelay(t *testing.T) {
	t.Run("Unhandled error propagates unchanged", func(t *testing.T) {
		f := newExceptionFixture()

		result, err := f.reg.Call(callArgs())

		assert.Same(t, errFoo, err)
		assert.Nil(t, result)
	})

	t.Run("Observer runs but does not resolve", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddExceptionCallback(f.c1)

		_, err := f.reg.Call(callArgs())

		assert.Same(t, errFoo, err)
		assert.Equal(t, []string{"c1"}, f.order)
		assert.Empty(t, f.calledWith)
	})

	t.Run("Handler that re-raises keeps the error", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddExceptionCallback(f.c2, HandlesException())

		_, err := f.reg.Call(callArgs())

		assert.Same(t, errFoo, err)
		assert.Equal(t, []any{errFoo}, f.calledWith)
	})

	t.Run("Observer with args gets the callback args", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddExceptionCallback(f.c3, TakesTargetArgs())

		_, err := f.reg.Call(callArgs())

		assert.Same(t, errFoo, err)
		assert.Equal(t, []any{callArgs()}, f.calledWith)
	})

	t.Run("Re-raising handler followed by observer", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddExceptionCallback(f.c2, HandlesException())
		_, _ = f.reg.AddExceptionCallback(f.c3, TakesTargetArgs())

		_, err := f.reg.Call(callArgs())

		assert.Same(t, errFoo, err)
		assert.Equal(t, []string{"c2", "c3"}, f.order)
	})

	t.Run("Handler with args resolves the error", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddExceptionCallback(f.c4, HandlesException(), TakesTargetArgs())

		result, err := f.reg.Call(callArgs())

		require.NoError(t, err)
		assert.Equal(t, "c4 returned this", result)
		assert.Equal(t, []any{[]any{errFoo, callArgs()}}, f.calledWith)
	})

	t.Run("Handler without args resolves the error", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddExceptionCallback(f.c4NoArgs, HandlesException())

		result, err := f.reg.Call(callArgs())

		require.NoError(t, err)
		assert.Equal(t, "c4 returned this", result)
		assert.Equal(t, []any{[]any{errFoo, contracts.Args{}}}, f.calledWith)
	})

	t.Run("Handler can substitute a new error", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddExceptionCallback(f.c5NoArgs, HandlesException())

		_, err := f.reg.Call(callArgs())

		assert.Same(t, errC5, err)
		assert.Equal(t, []any{[]any{errFoo, contracts.Args{}}}, f.calledWith)
	})

	t.Run("Handler with args can substitute a new error", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddExceptionCallback(f.c5, HandlesException(), TakesTargetArgs())

		_, err := f.reg.Call(callArgs())

		assert.Same(t, errC5, err)
		assert.Equal(t, []any{[]any{errFoo, callArgs()}}, f.calledWith)
	})

	t.Run("Resolved error skips lower handlers but not observers", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddExceptionCallback(f.c3, WithPriority(0.1), TakesTargetArgs())
		_, _ = f.reg.AddExceptionCallback(f.c5NoArgs, WithPriority(0.2), HandlesException())
		_, _ = f.reg.AddExceptionCallback(f.c4, WithPriority(0.3), TakesTargetArgs(), HandlesException())

		result, err := f.reg.Call(callArgs())

		require.NoError(t, err)
		assert.Equal(t, "c4 returned this", result)
		assert.Equal(t, []string{"c4", "c3"}, f.order)
		assert.Equal(t, []any{[]any{errFoo, callArgs()}, callArgs()}, f.calledWith)
	})

	t.Run("Substituted error is passed to the next handler", func(t *testing.T) {
		f := newExceptionFixture()
		var seen error
		_, _ = f.reg.AddExceptionCallback(f.c5NoArgs, WithPriority(2), HandlesException())
		_, _ = f.reg.AddExceptionCallback(func(err error) (any, error) {
			seen = err
			return "recovered", nil
		}, WithPriority(1), HandlesException())

		result, err := f.reg.Call(callArgs())

		require.NoError(t, err)
		assert.Equal(t, "recovered", result)
		assert.Same(t, errC5, seen)
	})

	t.Run("Post phase runs when the chain ends resolved", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddPreCallback(f.c3, TakesTargetArgs())
		_, _ = f.reg.AddPostCallback(f.c3, TakesTargetArgs())
		_, _ = f.reg.AddExceptionCallback(f.c4, TakesTargetArgs(), HandlesException())

		result, err := f.reg.Call(callArgs())

		require.NoError(t, err)
		assert.Equal(t, "c4 returned this", result)
		assert.Equal(t, []string{"c3", "c4", "c3"}, f.order)
	})

	t.Run("Post phase is skipped when the chain ends unresolved", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddPreCallback(f.c3, TakesTargetArgs())
		_, _ = f.reg.AddPostCallback(f.c3, TakesTargetArgs())
		_, _ = f.reg.AddExceptionCallback(f.c5NoArgs, HandlesException())

		_, err := f.reg.Call(callArgs())

		assert.Same(t, errC5, err)
		assert.Equal(t, []string{"c3", "c5"}, f.order)
	})

	t.Run("Post result is the handler's value", func(t *testing.T) {
		f := newExceptionFixture()
		var got any
		_, _ = f.reg.AddExceptionCallback(func(error) (any, error) { return "handled", nil }, HandlesException())
		_, _ = f.reg.AddPostCallback(func(result any) { got = result }, TakesTargetResult())

		result, err := f.reg.Call(callArgs())

		require.NoError(t, err)
		assert.Equal(t, "handled", result)
		assert.Equal(t, "handled", got)
	})

	t.Run("Failing observer aborts the relay", func(t *testing.T) {
		f := newExceptionFixture()
		observerErr := errors.New("observer failed")
		_, _ = f.reg.AddExceptionCallback(func() error { return observerErr }, WithPriority(1))
		_, _ = f.reg.AddExceptionCallback(f.c4, TakesTargetArgs(), HandlesException())

		_, err := f.reg.Call(callArgs())

		assert.Same(t, observerErr, err)
		assert.Empty(t, f.order)
	})

	t.Run("Handler may resolve with a nil value", func(t *testing.T) {
		f := newExceptionFixture()
		_, _ = f.reg.AddExceptionCallback(func(error) (any, error) { return nil, nil }, HandlesException())

		result, err := f.reg.Call(callArgs())

		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}
