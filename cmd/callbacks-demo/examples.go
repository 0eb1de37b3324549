package main

import (
	"errors"
	"fmt"

	callbacks "github.com/glimte/callbacks-go"
	"github.com/glimte/callbacks-go/contracts"
	"github.com/glimte/callbacks-go/registry"
)

type example struct {
	name  string
	short string
	run   func(env *demoEnv) error
}

var examples = []example{
	{"hello", "Attach a post callback to a function", runHello},
	{"methods", "Attach a callback to one receiver of a method", runMethods},
	{"pre-and-post", "Run callbacks before and after the target", runPreAndPost},
	{"priorities", "Order callbacks with priorities", runPriorities},
	{"removing", "Remove callbacks by label, in batches, or all at once", runRemoving},
	{"exceptions", "Handle and observe target errors", runExceptions},
	{"class-level", "Combine class-level and instance-level callbacks", runClassLevel},
	{"callback-args", "Pass the target's arguments or result to callbacks", runCallbackArgs},
	{"list", "Show the callbacks attached to a target", runList},
}

// errSquawk is what the exceptions example's target fails with
var errSquawk = errors.New("squawk")

// parrot is the receiver of the method examples
type parrot struct {
	name string
}

func noop(contracts.Args) (any, error) {
	return nil, nil
}

func expect(env *demoEnv, text string) {
	fmt.Fprintf(env.out, "This should print %s:\n", text)
}

func runHello(env *demoEnv) error {
	target := callbacks.Function(func(contracts.Args) (any, error) {
		fmt.Fprint(env.out, "hello ")
		return nil, nil
	}, env.named("target")...)

	if _, err := target.AddCallback(func() { fmt.Fprintln(env.out, "Polly!") }); err != nil {
		return err
	}

	expect(env, "'hello Polly!'")
	_, err := target.Invoke()
	return err
}

func newPrintString(env *demoEnv) func(p *parrot, args contracts.Args) (any, error) {
	return func(p *parrot, args contracts.Args) (any, error) {
		fmt.Fprintf(env.out, "%v ", args.Arg(0))
		return nil, nil
	}
}

func runMethods(env *demoEnv) error {
	printString := callbacks.Method(newPrintString(env), env.named("parrot.PrintString")...)

	e := &parrot{name: "polly"}
	if _, err := printString.Bind(e).AddCallback(func() { fmt.Fprintln(env.out, "you're a pretty bird!") }); err != nil {
		return err
	}

	expect(env, "'Hello, you're a pretty bird!'")
	if _, err := printString.Bind(e).Invoke("Hello,"); err != nil {
		return err
	}

	other := &parrot{name: "kiwi"}
	expect(env, "'Hello,' and nothing more for another parrot")
	_, err := printString.Bind(other).Invoke("Hello,")
	fmt.Fprintln(env.out)
	return err
}

func runPreAndPost(env *demoEnv) error {
	printString := callbacks.Function(func(args contracts.Args) (any, error) {
		fmt.Fprintf(env.out, "%v ", args.Arg(0))
		return nil, nil
	}, env.named("printString")...)

	if _, err := printString.AddPostCallback(func() { fmt.Fprintln(env.out, "Do you want a cracker?") }); err != nil {
		return err
	}
	if _, err := printString.AddPreCallback(func() { fmt.Fprint(env.out, "Hello, ") }); err != nil {
		return err
	}

	expect(env, "'Hello, Polly! Do you want a cracker?'")
	_, err := printString.Invoke("Polly!")
	return err
}

func runPriorities(env *demoEnv) error {
	printFirst := func() { fmt.Fprintln(env.out, "first") }
	printSecond := func() { fmt.Fprintln(env.out, "second") }

	without := callbacks.Function(noop, env.named("withoutPriorities")...)
	if _, err := without.AddCallback(printSecond); err != nil {
		return err
	}
	if _, err := without.AddCallback(printFirst); err != nil {
		return err
	}
	expect(env, "'second' then 'first'")
	if _, err := without.Invoke(); err != nil {
		return err
	}

	with := callbacks.Function(noop, env.named("withPriorities")...)
	if _, err := with.AddCallback(printSecond, registry.WithPriority(1.0)); err != nil {
		return err
	}
	if _, err := with.AddCallback(printFirst, registry.WithPriority("1.1")); err != nil {
		return err
	}
	expect(env, "'first' then 'second'")
	_, err := with.Invoke()
	return err
}

func runRemoving(env *demoEnv) error {
	target := callbacks.Function(noop, env.named("target")...)

	var labels []contracts.Label
	for _, s := range []string{"1", "a", "foo", "bar"} {
		label, err := target.AddCallback(func() { fmt.Fprintln(env.out, s) })
		if err != nil {
			return err
		}
		labels = append(labels, label)
	}
	labelA, labelFoo, labelBar := labels[1], labels[2], labels[3]

	expect(env, "'1', 'a', 'foo', then 'bar'")
	if _, err := target.Invoke(); err != nil {
		return err
	}

	if err := target.RemoveCallback(labelFoo); err != nil {
		return err
	}
	expect(env, "'1', 'a', then 'bar'")
	if _, err := target.Invoke(); err != nil {
		return err
	}

	if err := target.RemoveCallbacks(labelA, labelBar); err != nil {
		return err
	}
	expect(env, "'1'")
	if _, err := target.Invoke(); err != nil {
		return err
	}

	// a full reset needs no labels
	if err := target.RemoveCallbacks(); err != nil {
		return err
	}
	expect(env, "nothing")
	_, err := target.Invoke()
	return err
}

func runExceptions(env *demoEnv) error {
	target := callbacks.Function(func(contracts.Args) (any, error) {
		return nil, errSquawk
	}, env.named("target")...)

	_, err := target.AddExceptionCallback(func(err error) (any, error) {
		fmt.Fprintf(env.out, "I handled exception %v\n", err)
		return nil, nil
	}, registry.HandlesException())
	if err != nil {
		return err
	}

	expect(env, "'I handled exception squawk' and not fail")
	if _, err := target.Invoke(); err != nil {
		return err
	}

	if err := target.RemoveCallbacks(); err != nil {
		return err
	}
	if _, err := target.AddExceptionCallback(func() { fmt.Fprintln(env.out, "I noticed an exception occurred") }); err != nil {
		return err
	}

	expect(env, "'I noticed an exception occurred' and then fail")
	_, err = target.Invoke()
	if !errors.Is(err, errSquawk) {
		return fmt.Errorf("expected %v, got %v", errSquawk, err)
	}
	fmt.Fprintf(env.out, "target failed: %v\n", err)
	return nil
}

func runClassLevel(env *demoEnv) error {
	printString := callbacks.Method(newPrintString(env), env.named("parrot.PrintString")...)

	e := &parrot{name: "polly"}
	if _, err := printString.Bind(e).AddPostCallback(func() { fmt.Fprintln(env.out, "you're a pretty bird!") }); err != nil {
		return err
	}

	expect(env, "'Hello, you're a pretty bird!'")
	if _, err := printString.Bind(e).Invoke("Hello,"); err != nil {
		return err
	}

	// class-level callbacks run inside the instance-level ones
	_, err := printString.Class().AddPostCallback(func() {
		fmt.Fprintln(env.out, "Polly!")
		fmt.Fprint(env.out, "I think ")
	})
	if err != nil {
		return err
	}

	expect(env, "'Hello Polly!' then 'I think you're a pretty bird!'")
	_, err = printString.Bind(e).Invoke("Hello")
	return err
}

func runCallbackArgs(env *demoEnv) error {
	target := callbacks.Function(func(contracts.Args) (any, error) {
		return 5, nil
	}, env.named("target")...)

	_, err := target.AddCallback(func(args contracts.Args) {
		fmt.Fprintf(env.out, "I got args %s\n", args)
	}, registry.TakesTargetArgs())
	if err != nil {
		return err
	}

	call := contracts.NewArgs(1, 2, 3).With("foo", "bar")
	expect(env, "'I got args (1, 2, 3, foo=bar)' then 'target returned 5'")
	result, err := target.Call(call)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.out, "target returned %v\n", result)

	if err := target.RemoveCallbacks(); err != nil {
		return err
	}
	_, err = target.AddCallback(func(result any) {
		fmt.Fprintf(env.out, "I got result %v\n", result)
	}, registry.TakesTargetResult())
	if err != nil {
		return err
	}

	expect(env, "'I got result 5' then 'target returned 5'")
	result, err = target.Call(call)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.out, "target returned %v\n", result)
	return nil
}

func runList(env *demoEnv) error {
	target := callbacks.Function(noop, env.named("target")...)

	steps := []struct {
		add     func(any, ...registry.CallbackOption) (contracts.Label, error)
		cb      any
		options []registry.CallbackOption
	}{
		{target.AddPreCallback, func() {}, []registry.CallbackOption{registry.WithLabel("greet"), registry.WithPriority(2)}},
		{target.AddPostCallback, func(any) {}, []registry.CallbackOption{registry.WithLabel("report"), registry.TakesTargetResult()}},
		{target.AddPostCallback, func(contracts.Args) {}, []registry.CallbackOption{registry.WithLabel("audit"), registry.TakesTargetArgs()}},
		{target.AddExceptionCallback, func(error) (any, error) { return nil, nil }, []registry.CallbackOption{registry.WithLabel("recover"), registry.HandlesException()}},
	}
	for _, s := range steps {
		if _, err := s.add(s.cb, s.options...); err != nil {
			return err
		}
	}

	fmt.Fprintln(env.out, target.Describe())
	return target.WriteCallbacks(env.out)
}
