package index

import (
	"sort"

	"github.com/glimte/callbacks-go/contracts"
)

// Bucket is one priority level of a snapshot
type Bucket struct {
	Priority float64
	Labels   []contracts.Label
}

// PhaseIndex orders labels by priority then by insertion
type PhaseIndex struct {
	buckets map[float64][]contracts.Label
	count   int
}

// New creates an empty index
func New() *PhaseIndex {
	return &PhaseIndex{buckets: make(map[float64][]contracts.Label)}
}

// Append adds label at the end of the bucket for priority
func (x *PhaseIndex) Append(priority float64, label contracts.Label) {
	x.buckets[priority] = append(x.buckets[priority], label)
	x.count++
}

// Remove deletes label from the bucket for priority.
// Empty buckets are dropped.
func (x *PhaseIndex) Remove(priority float64, label contracts.Label) bool {
	labels, ok := x.buckets[priority]
	if !ok {
		return false
	}

	for i, l := range labels {
		if l != label {
			continue
		}

		// copy so that snapshots sharing the old backing array are not disturbed
		rest := make([]contracts.Label, 0, len(labels)-1)
		rest = append(rest, labels[:i]...)
		rest = append(rest, labels[i+1:]...)

		if len(rest) == 0 {
			delete(x.buckets, priority)
		} else {
			x.buckets[priority] = rest
		}
		x.count--
		return true
	}

	return false
}

// Position returns the order of label inside its priority bucket
func (x *PhaseIndex) Position(priority float64, label contracts.Label) (int, bool) {
	for i, l := range x.buckets[priority] {
		if l == label {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of labels in the index
func (x *PhaseIndex) Len() int {
	return x.count
}

// Clear empties the index
func (x *PhaseIndex) Clear() {
	x.buckets = make(map[float64][]contracts.Label)
	x.count = 0
}

// Snapshot returns the buckets in descending priority.
// The returned slices are copies; later mutation of the index does not show through.
func (x *PhaseIndex) Snapshot() []Bucket {
	priorities := make([]float64, 0, len(x.buckets))
	for p := range x.buckets {
		priorities = append(priorities, p)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(priorities)))

	out := make([]Bucket, 0, len(priorities))
	for _, p := range priorities {
		labels := make([]contracts.Label, len(x.buckets[p]))
		copy(labels, x.buckets[p])
		out = append(out, Bucket{Priority: p, Labels: labels})
	}

	return out
}

// Ordered flattens a snapshot into invocation order
func (x *PhaseIndex) Ordered() []contracts.Label {
	out := make([]contracts.Label, 0, x.count)
	for _, b := range x.Snapshot() {
		out = append(out, b.Labels...)
	}
	return out
}
