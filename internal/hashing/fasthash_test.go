package hashing

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkedHash_EqualInputsEqualHashes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	data := make([]byte, 3*ChunkSize+777)
	rng.Read(data)

	other := append([]byte(nil), data...)

	h1, err := ChunkedHash(context.Background(), data)
	require.NoError(t, err)
	h2, err := ChunkedHash(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestChunkedHash_SingleByteChange(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	data := make([]byte, 2*ChunkSize)
	rng.Read(data)

	base, err := ChunkedHash(context.Background(), data)
	require.NoError(t, err)

	for _, off := range []int{0, ChunkSize - 1, ChunkSize, len(data) - 1} {
		changed := append([]byte(nil), data...)
		changed[off] ^= 0x01
		h, err := ChunkedHash(context.Background(), changed)
		require.NoError(t, err)
		assert.NotEqual(t, base, h, "change at offset %d", off)
	}
}

func TestChunkedHash_ChunkReorderDetected(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := make([]byte, ChunkSize)
	b := make([]byte, ChunkSize)
	rng.Read(a)
	rng.Read(b)

	ab, err := ChunkedHash(context.Background(), append(append([]byte(nil), a...), b...))
	require.NoError(t, err)
	ba, err := ChunkedHash(context.Background(), append(append([]byte(nil), b...), a...))
	require.NoError(t, err)

	// Per-chunk seeding makes the combination order-sensitive even
	// though it is a plain XOR.
	assert.NotEqual(t, ab, ba)
}

func TestChunkedHash_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ChunkedHash(ctx, make([]byte, 8*ChunkSize))
	require.ErrorIs(t, err, context.Canceled)
}

func TestChunkedHash_Empty(t *testing.T) {
	h1, err := ChunkedHash(context.Background(), nil)
	require.NoError(t, err)
	h2, err := ChunkedHash(context.Background(), []byte{})
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}
