// Copyright 2024 Callbacks Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package callbacks decorates functions and methods so that callbacks can be
// attached to run before them, after them, or when they fail.
//
//	greet := callbacks.Function(func(args contracts.Args) (any, error) {
//		return fmt.Sprintf("hello %v", args.Arg(0)), nil
//	}, callbacks.WithName("greet"))
//
//	greet.AddPostCallback(func(result any) { fmt.Println(result) },
//		registry.TakesTargetResult())
//
//	greet.Invoke("world")
//
// Function returns the registry itself; Method returns a binding.Method whose
// Bind gives each receiver its own callbacks on top of the class-level ones.
package callbacks

import (
	"log/slog"

	"github.com/glimte/callbacks-go/binding"
	"github.com/glimte/callbacks-go/interceptors"
	"github.com/glimte/callbacks-go/registry"
)

// Option configures a decorated target
type Option func(*config)

type config struct {
	name   string
	logger *slog.Logger
	chain  *interceptors.InterceptorChain
}

// WithName sets the target name used in errors, logs and Describe
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the logger for registration and removal events
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithInterceptors attaches chain to the decorated target. For methods the
// chain observes the class-level registry, which every bound call passes
// through. The chain is not a callback: RemoveCallbacks leaves it attached.
func WithInterceptors(chain *interceptors.InterceptorChain) Option {
	return func(c *config) {
		c.chain = chain
	}
}

func (c *config) registryOptions() []registry.Option {
	var opts []registry.Option
	if c.name != "" {
		opts = append(opts, registry.WithName(c.name))
	}
	if c.logger != nil {
		opts = append(opts, registry.WithLogger(c.logger))
	}
	return opts
}

func newConfig(options []Option) *config {
	c := &config{}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *config) attach(r *registry.Registry) {
	if c.chain != nil {
		c.chain.Attach(r)
	}
}

// Function decorates target
func Function(target registry.Target, options ...Option) *registry.Registry {
	c := newConfig(options)
	r := registry.New(target, c.registryOptions()...)
	c.attach(r)
	return r
}

// Method decorates a method of T. Callbacks registered on Class() run for
// every receiver; callbacks registered on Bind(recv) run only for recv.
func Method[T any](fn binding.Func[T], options ...Option) *binding.Method[T] {
	c := newConfig(options)
	m := binding.New(fn, c.registryOptions()...)
	c.attach(m.Class())
	return m
}
