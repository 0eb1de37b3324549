// Package registry provides the callback registry and invocation pipeline.
//
// A Registry wraps a target function. Callbacks registered on it run before
// the target (pre), after the target (post) or when the target fails
// (exception). Within a phase, higher priority callbacks run first and ties
// run in registration order.
//
// Example usage:
//
//	reg := registry.New(func(args contracts.Args) (any, error) {
//		return args.Arg(0), nil
//	}, registry.WithName("echo"))
//
//	label, err := reg.AddPostCallback(func(result any) {
//		fmt.Println("echo returned", result)
//	}, registry.TakesTargetResult(), registry.WithPriority(10))
//
//	result, err := reg.Invoke("hello")
//
// Exception callbacks marked with HandlesException receive the in-flight
// error and may resolve it by returning a value, or replace it by returning
// a different error. The first handler that succeeds resolves the error;
// later handlers are skipped while non-handling exception callbacks still
// run. If the chain ends unresolved the error is returned to the caller and
// the post phase does not run.
//
// Registries are not safe for concurrent use. A callback may call the
// registry again (recursion) or mutate it, e.g. remove itself; each phase
// iterates a snapshot taken when the phase starts, callbacks removed during
// the phase are not called and callbacks added during the phase run from
// the next invocation on.
//
// Observers (AddObserver) watch invocations from outside the callback set:
// they are never listed or counted and RemoveCallbacks leaves them in place.
package registry
