package hashing

import (
	"context"
	"runtime"

	"github.com/cespare/xxhash/v2"
)

// ChunkSize is the span hashed per xxHash64 digest in ChunkedHash.
const ChunkSize = 64 * 1024

// ChunkedHash computes a fast whole-buffer hash: one xxHash64 digest per
// 64 KiB chunk, each seeded with its chunk index, XOR-combined. Seeding by
// position keeps two buffers with reordered chunks from colliding.
//
// The result is an equality fingerprint for the diff fast path, not a
// cryptographic digest. Yields between chunks and honors cancellation.
func ChunkedHash(ctx context.Context, data []byte) (uint64, error) {
	if len(data) == 0 {
		return xxhash.Sum64(nil), nil
	}
	var combined uint64
	for i, off := 0, 0; off < len(data); i, off = i+1, off+ChunkSize {
		end := off + ChunkSize
		if end > len(data) {
			end = len(data)
		}
		d := xxhash.NewWithSeed(uint64(i))
		// Digest.Write never fails.
		_, _ = d.Write(data[off:end])
		combined ^= d.Sum64()

		if i%4 == 3 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			runtime.Gosched()
		}
	}
	return combined, nil
}

// Sum64 is a plain single-shot xxHash64 of data, for callers that want a
// quick fingerprint of a small region.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
