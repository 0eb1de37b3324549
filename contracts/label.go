package contracts

import "fmt"

// Label identifies a callback within one registry
type Label string

// String implements fmt.Stringer
func (l Label) String() string {
	return string(l)
}

// Phase is the point of the invocation at which a callback runs
type Phase uint8

const (
	// PhasePre runs before the target
	PhasePre Phase = iota
	// PhasePost runs after the target returned (or its error was resolved)
	PhasePost
	// PhaseException runs after the target failed
	PhaseException
)

// Phases lists every phase in pipeline order
var Phases = []Phase{PhasePre, PhasePost, PhaseException}

// String returns the phase name used in listings
func (p Phase) String() string {
	switch p {
	case PhasePre:
		return "pre"
	case PhasePost:
		return "post"
	case PhaseException:
		return "exception"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Convention is the calling convention of a callback, fixed when the
// callback is registered from its TakesTargetArgs, TakesTargetResult and
// HandlesException options.
type Convention uint8

const (
	// ConvPlain calls the callback with no arguments
	ConvPlain Convention = iota
	// ConvArgs forwards the target arguments
	ConvArgs
	// ConvResult forwards the target result (post only)
	ConvResult
	// ConvResultArgs forwards the target result followed by the target arguments (post only)
	ConvResultArgs
	// ConvHandler forwards the in-flight error; the callback resolves or replaces it (exception only)
	ConvHandler
	// ConvHandlerArgs forwards the in-flight error followed by the target arguments (exception only)
	ConvHandlerArgs
)

// ResolveConvention maps the registration flags of a callback to its convention.
// It fails with ErrInvalidOption when a flag does not apply to the phase.
func ResolveConvention(phase Phase, takesArgs, takesResult, handlesException bool) (Convention, error) {
	if takesResult && phase != PhasePost {
		return 0, fmt.Errorf("%w: takes target result applies to post callbacks, not %s", ErrInvalidOption, phase)
	}
	if handlesException && phase != PhaseException {
		return 0, fmt.Errorf("%w: handles exception applies to exception callbacks, not %s", ErrInvalidOption, phase)
	}

	switch {
	case takesResult && takesArgs:
		return ConvResultArgs, nil
	case takesResult:
		return ConvResult, nil
	case handlesException && takesArgs:
		return ConvHandlerArgs, nil
	case handlesException:
		return ConvHandler, nil
	case takesArgs:
		return ConvArgs, nil
	default:
		return ConvPlain, nil
	}
}

// TakesTargetArgs reports whether the target arguments are forwarded
func (c Convention) TakesTargetArgs() bool {
	return c == ConvArgs || c == ConvResultArgs || c == ConvHandlerArgs
}

// TakesTargetResult reports whether the target result is forwarded
func (c Convention) TakesTargetResult() bool {
	return c == ConvResult || c == ConvResultArgs
}

// HandlesException reports whether the callback receives and resolves the in-flight error
func (c Convention) HandlesException() bool {
	return c == ConvHandler || c == ConvHandlerArgs
}

// String implements fmt.Stringer
func (c Convention) String() string {
	switch c {
	case ConvPlain:
		return "plain"
	case ConvArgs:
		return "args"
	case ConvResult:
		return "result"
	case ConvResultArgs:
		return "result+args"
	case ConvHandler:
		return "handler"
	case ConvHandlerArgs:
		return "handler+args"
	default:
		return fmt.Sprintf("convention(%d)", uint8(c))
	}
}
