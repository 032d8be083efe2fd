//go:build unit

package errs_test

import (
	"testing"

	"ticketapp/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kindError struct{ kind string }

func (e kindError) Error() string { return e.kind }

func TestMark(t *testing.T) {
	sentinel := errs.New("operation not allowed")
	cause := errs.New("row not updated")

	t.Run("errors.Is matches the mark", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("errors.Is still matches the cause", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("the message stays the cause's", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)
		assert.Equal(t, cause.Error(), err.Error())
	})

	t.Run("mark survives further wrapping", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(cause, sentinel), "while finalizing")
		assert.ErrorIs(t, err, sentinel)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("double mark matches both sentinels", func(t *testing.T) {
		other := errs.New("validation failed")
		err := errs.Mark(errs.Mark(cause, sentinel), other)
		assert.ErrorIs(t, err, sentinel)
		assert.ErrorIs(t, err, other)
	})

	t.Run("errors.As reaches the cause through the mark", func(t *testing.T) {
		typed := kindError{kind: "CONFLICT"}
		err := errs.Mark(errs.Wrap(typed, "update failed"), sentinel)

		var got kindError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, "CONFLICT", got.kind)
	})

	t.Run("nil cause yields the mark itself", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)
		assert.Equal(t, sentinel, err)
	})
}

func TestExtractStackLines(t *testing.T) {
	t.Run("marked errors keep the cause's stack", func(t *testing.T) {
		err := errs.Mark(errs.New("boom"), errs.New("marker"))

		lines := errs.ExtractStackLines(err, 0)
		require.NotEmpty(t, lines)
		assert.Equal(t, "boom", lines[0])
		assert.Greater(t, len(lines), 1, "stack detail lost through the mark")
	})

	t.Run("maxLines caps the output", func(t *testing.T) {
		lines := errs.ExtractStackLines(errs.New("boom"), 2)
		assert.Len(t, lines, 2)
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, errs.ExtractStackLines(nil, 5))
	})
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
}
