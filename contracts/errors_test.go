package contracts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("RegistrationError", func(t *testing.T) {
		err := &RegistrationError{Op: "AddPreCallback", Target: "foo", Label: "x", Err: ErrDuplicateLabel}

		assert.True(t, errors.Is(err, ErrDuplicateLabel))
		assert.Equal(t, `AddPreCallback on "foo" failed for label "x": callbacks: label already registered`, err.Error())

		err.Label = ""
		assert.Equal(t, `AddPreCallback on "foo" failed: callbacks: label already registered`, err.Error())
	})

	t.Run("RemovalError", func(t *testing.T) {
		err := &RemovalError{Target: "foo", Label: "x", Err: ErrUnknownLabel}

		assert.ErrorIs(t, err, ErrUnknownLabel)
		assert.Contains(t, err.Error(), `no callback with label "x" attached to "foo"`)
	})

	t.Run("BatchRemovalError", func(t *testing.T) {
		err := &BatchRemovalError{Target: "foo", Labels: []Label{"a", "b"}}

		assert.ErrorIs(t, err, ErrUnknownLabel)
		assert.Equal(t, `no callbacks with labels ["a", "b"] attached to "foo"`, err.Error())

		var batch *BatchRemovalError
		assert.True(t, errors.As(error(err), &batch))
		assert.Equal(t, []Label{"a", "b"}, batch.Labels)
	})
}
