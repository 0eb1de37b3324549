// Package contracts provides the shared vocabulary for callback registries.
//
// This package defines the types every other package agrees on:
//   - Label: Unique identifier of a callback within one registry
//   - Phase: When a callback runs (pre, post, exception)
//   - Convention: How a callback is called, resolved once at registration
//   - Args: Positional and keyword arguments forwarded to the target
//
// It also holds the sentinel errors and typed errors returned by
// registration and removal.
package contracts
