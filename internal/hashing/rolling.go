// Package hashing provides the hash primitives the diff engine uses to
// find candidate equal regions without rescanning: a Rabin-Karp rolling
// window hash and an xxHash64-based whole-buffer fast hash.
package hashing

import (
	"context"
	"runtime"
)

const (
	// WindowSize is the rolling window width used for anchor discovery.
	WindowSize = 64

	// rollingBase is the polynomial base. Arithmetic is uint64 with
	// natural wraparound, so no explicit modulus is needed; the base
	// must be odd so the outgoing-byte contribution stays exact.
	rollingBase = 1099511628211

	// yieldEvery is how many offsets a full-buffer scan processes
	// between cooperative yields.
	yieldEvery = 10000
)

// RollingHash maintains the polynomial hash of a fixed-width byte window:
//
//	hash(window) = sum(window[i] * base^(w-1-i)) mod 2^64
//
// Init computes the hash from scratch; Roll shifts the window by one byte
// in O(1) by removing the outgoing byte's weighted contribution.
type RollingHash struct {
	window int
	hash   uint64
	pow    uint64 // rollingBase^(window-1)
}

// NewRollingHash creates a rolling hash over windows of the given width.
func NewRollingHash(window int) *RollingHash {
	pow := uint64(1)
	for i := 0; i < window-1; i++ {
		pow *= rollingBase
	}
	return &RollingHash{window: window, pow: pow}
}

// Init computes the hash of data's first window bytes from scratch and
// returns it. When data holds fewer than window bytes there is nothing to
// hash: the state resets and Init returns 0.
func (r *RollingHash) Init(data []byte) uint64 {
	r.hash = 0
	if len(data) < r.window {
		return 0
	}
	for _, b := range data[:r.window] {
		r.hash = r.hash*rollingBase + uint64(b)
	}
	return r.hash
}

// Roll shifts the window one byte: out is the byte leaving on the left,
// in the byte entering on the right. Must only be called after Init.
func (r *RollingHash) Roll(out, in byte) uint64 {
	r.hash = (r.hash-uint64(out)*r.pow)*rollingBase + uint64(in)
	return r.hash
}

// Sum64 returns the current window hash.
func (r *RollingHash) Sum64() uint64 {
	return r.hash
}

// WindowHashes slides a window across data and returns one hash per start
// offset 0..len(data)-window. Offsets are dense, so the result is an
// offset-indexed array rather than a map. Returns nil when data is shorter
// than the window.
//
// The scan yields cooperatively every few thousand offsets and honors
// context cancellation, so it stays usable on buffers in the
// hundreds-of-MB range.
func WindowHashes(ctx context.Context, data []byte, window int) ([]uint64, error) {
	if window <= 0 || len(data) < window {
		return nil, nil
	}
	hashes := make([]uint64, len(data)-window+1)
	rh := NewRollingHash(window)
	hashes[0] = rh.Init(data)
	for i := 1; i < len(hashes); i++ {
		hashes[i] = rh.Roll(data[i-1], data[i+window-1])
		if i%yieldEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			runtime.Gosched()
		}
	}
	return hashes, nil
}
