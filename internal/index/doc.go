// Package index keeps the per-phase ordering of callback labels.
//
// A PhaseIndex groups labels into priority buckets. Buckets are visited in
// descending priority; labels inside a bucket keep their insertion order.
// The index only orders labels, it does not know what they point to.
package index
