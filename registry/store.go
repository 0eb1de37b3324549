package registry

import (
	"fmt"

	"github.com/glimte/callbacks-go/contracts"
)

// Entry describes a registered callback
type Entry struct {
	Label      contracts.Label
	Function   any
	Priority   float64
	Phase      contracts.Phase
	Convention contracts.Convention
}

// callInput is what the pipeline has available when it calls a callback.
// The entry's convention decides which parts are passed on.
type callInput struct {
	args   contracts.Args
	result any
	err    error
}

type invoker func(in callInput) (any, error)

type entry struct {
	Entry
	invoke invoker
}

// store maps labels to entries
type store map[contracts.Label]*entry

// bindCallback checks fn against the convention and returns a uniform invoker
func bindCallback(conv contracts.Convention, fn any) (invoker, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: callback is nil", contracts.ErrInvalidCallback)
	}

	switch conv {
	case contracts.ConvPlain:
		switch f := fn.(type) {
		case func():
			return func(callInput) (any, error) { f(); return nil, nil }, nil
		case func() error:
			return func(callInput) (any, error) { return nil, f() }, nil
		}
	case contracts.ConvArgs:
		switch f := fn.(type) {
		case func(contracts.Args):
			return func(in callInput) (any, error) { f(in.args); return nil, nil }, nil
		case func(contracts.Args) error:
			return func(in callInput) (any, error) { return nil, f(in.args) }, nil
		}
	case contracts.ConvResult:
		switch f := fn.(type) {
		case func(any):
			return func(in callInput) (any, error) { f(in.result); return nil, nil }, nil
		case func(any) error:
			return func(in callInput) (any, error) { return nil, f(in.result) }, nil
		}
	case contracts.ConvResultArgs:
		switch f := fn.(type) {
		case func(any, contracts.Args):
			return func(in callInput) (any, error) { f(in.result, in.args); return nil, nil }, nil
		case func(any, contracts.Args) error:
			return func(in callInput) (any, error) { return nil, f(in.result, in.args) }, nil
		}
	case contracts.ConvHandler:
		if f, ok := fn.(func(error) (any, error)); ok {
			return func(in callInput) (any, error) { return f(in.err) }, nil
		}
	case contracts.ConvHandlerArgs:
		if f, ok := fn.(func(error, contracts.Args) (any, error)); ok {
			return func(in callInput) (any, error) { return f(in.err, in.args) }, nil
		}
	}

	return nil, fmt.Errorf("%w: %T cannot be called as %s", contracts.ErrInvalidCallback, fn, conv)
}
