package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutOfRangeError(t *testing.T) {
	err := NewOutOfRangeError("read", 12, 10)

	assert.Equal(t, ErrorTypeOutOfRange, err.Type)
	assert.Contains(t, err.Error(), "index 12")
	assert.Contains(t, err.Error(), "length 10")
	assert.True(t, IsOutOfRange(err))
	assert.False(t, IsOutOfRange(stderrors.New("plain")))
}

func TestOutOfRangeError_Wrapped(t *testing.T) {
	err := fmt.Errorf("delete failed: %w", NewOutOfRangeError("delete", 0, 0))
	assert.True(t, IsOutOfRange(err))
}

func TestCompareError(t *testing.T) {
	underlying := stderrors.New("boom")
	err := NewCompareError("anchor-search", underlying)

	assert.Equal(t, ErrorTypeCompare, err.Type)
	assert.Contains(t, err.Error(), "anchor-search")
	assert.True(t, stderrors.Is(err, underlying))
	assert.False(t, IsCancelled(err))
}

func TestCancelledError(t *testing.T) {
	err := NewCancelledError("gap-fill", context.Canceled)

	require.True(t, IsCancelled(err))
	assert.True(t, stderrors.Is(err, context.Canceled))
	assert.Contains(t, err.Error(), "cancelled")

	// Cancellation must survive wrapping.
	wrapped := fmt.Errorf("compare: %w", err)
	assert.True(t, IsCancelled(wrapped))
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("window_size", "-1", stderrors.New("must be positive"))
	assert.Contains(t, err.Error(), "window_size")
	assert.Contains(t, err.Error(), "must be positive")
}
