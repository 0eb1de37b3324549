package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimte/callbacks-go/contracts"
)

func TestPhaseIndex(t *testing.T) {
	t.Run("New creates empty index", func(t *testing.T) {
		x := New()

		assert.Equal(t, 0, x.Len())
		assert.Empty(t, x.Snapshot())
		assert.Empty(t, x.Ordered())
	})

	t.Run("Ordered visits higher priority first", func(t *testing.T) {
		x := New()
		x.Append(0, "cb1")
		x.Append(1, "cb2")
		x.Append(1, "cb3")
		x.Append(-2.5, "cb4")

		assert.Equal(t, []contracts.Label{"cb2", "cb3", "cb1", "cb4"}, x.Ordered())
		assert.Equal(t, 4, x.Len())
	})

	t.Run("Infinite priorities sort at the ends", func(t *testing.T) {
		x := New()
		x.Append(0, "middle")
		x.Append(math.Inf(-1), "last")
		x.Append(math.Inf(1), "first")

		assert.Equal(t, []contracts.Label{"first", "middle", "last"}, x.Ordered())
	})

	t.Run("Remove keeps order of remaining labels", func(t *testing.T) {
		x := New()
		x.Append(0, "a")
		x.Append(0, "b")
		x.Append(0, "c")

		require.True(t, x.Remove(0, "b"))

		assert.Equal(t, []contracts.Label{"a", "c"}, x.Ordered())
		assert.Equal(t, 2, x.Len())
	})

	t.Run("Remove reports unknown labels", func(t *testing.T) {
		x := New()
		x.Append(0, "a")

		assert.False(t, x.Remove(0, "missing"))
		assert.False(t, x.Remove(3, "a"))
		assert.Equal(t, 1, x.Len())
	})

	t.Run("Remove drops empty buckets", func(t *testing.T) {
		x := New()
		x.Append(2, "a")
		x.Remove(2, "a")

		assert.Empty(t, x.Snapshot())
	})

	t.Run("Position returns order within bucket", func(t *testing.T) {
		x := New()
		x.Append(0, "a")
		x.Append(1, "b")
		x.Append(0, "c")

		pos, ok := x.Position(0, "c")
		assert.True(t, ok)
		assert.Equal(t, 1, pos)

		pos, ok = x.Position(1, "b")
		assert.True(t, ok)
		assert.Equal(t, 0, pos)

		_, ok = x.Position(1, "a")
		assert.False(t, ok)
	})

	t.Run("Snapshot is not affected by later mutation", func(t *testing.T) {
		x := New()
		x.Append(0, "a")
		x.Append(0, "b")

		snap := x.Snapshot()
		x.Remove(0, "a")
		x.Append(0, "c")

		require.Len(t, snap, 1)
		assert.Equal(t, []contracts.Label{"a", "b"}, snap[0].Labels)
	})

	t.Run("Clear empties every bucket", func(t *testing.T) {
		x := New()
		x.Append(0, "a")
		x.Append(5, "b")

		x.Clear()

		assert.Equal(t, 0, x.Len())
		assert.Empty(t, x.Ordered())
	})
}
