package contracts

import (
	"fmt"
	"sort"
	"strings"
)

// Args holds the positional and keyword arguments of one invocation
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// NewArgs creates Args from positional values
func NewArgs(positional ...any) Args {
	return Args{Positional: positional}
}

// With returns a copy of the arguments with the keyword set.
// The receiver is left untouched.
func (a Args) With(key string, value any) Args {
	kw := make(map[string]any, len(a.Keyword)+1)
	for k, v := range a.Keyword {
		kw[k] = v
	}
	kw[key] = value

	return Args{Positional: a.Positional, Keyword: kw}
}

// Len returns the number of positional arguments
func (a Args) Len() int {
	return len(a.Positional)
}

// Arg returns the positional argument at i, or nil when out of range
func (a Args) Arg(i int) any {
	if i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// Kwarg returns the keyword argument and whether it was supplied
func (a Args) Kwarg(key string) (any, bool) {
	v, ok := a.Keyword[key]
	return v, ok
}

// IsEmpty reports whether no arguments were supplied at all
func (a Args) IsEmpty() bool {
	return len(a.Positional) == 0 && len(a.Keyword) == 0
}

// Shift drops the first positional argument (the method receiver)
func (a Args) Shift() Args {
	if len(a.Positional) == 0 {
		return a
	}
	return Args{Positional: a.Positional[1:], Keyword: a.Keyword}
}

// Prepend returns the arguments with v inserted as the first positional value
func (a Args) Prepend(v any) Args {
	positional := make([]any, 0, len(a.Positional)+1)
	positional = append(positional, v)
	positional = append(positional, a.Positional...)

	return Args{Positional: positional, Keyword: a.Keyword}
}

// String renders the arguments as "(1, 2, key=value)" with keywords sorted
func (a Args) String() string {
	parts := make([]string, 0, len(a.Positional)+len(a.Keyword))
	for _, v := range a.Positional {
		parts = append(parts, fmt.Sprintf("%v", v))
	}

	keys := make([]string, 0, len(a.Keyword))
	for k := range a.Keyword {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, a.Keyword[k]))
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
