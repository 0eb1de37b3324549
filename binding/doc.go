// Package binding gives methods per-instance callback registries.
//
// A Method wraps a function whose first parameter is the receiver. Callbacks
// added through Class apply to every receiver; callbacks added through a
// Bound value apply to that receiver only. For an instance the callbacks
// nest as
//
//	instance-pre, class-pre, method, class-exception, class-post,
//	instance-exception, instance-post
//
// Instance registries are looked up by pointer identity and are held
// weakly: they never keep the receiver alive and are dropped after the
// receiver has been garbage collected.
//
// Example usage:
//
//	type Counter struct{ n int }
//
//	incr := binding.New(func(c *Counter, args contracts.Args) (any, error) {
//		c.n++
//		return c.n, nil
//	}, registry.WithName("Counter.Incr"))
//
//	a, b := &Counter{}, &Counter{}
//	incr.Class().AddPostCallback(logEveryCall)
//	incr.Bind(a).AddPostCallback(onlyForA)
//
//	incr.Call(a, contracts.Args{}) // logEveryCall, onlyForA
//	incr.Call(b, contracts.Args{}) // logEveryCall
package binding
