package diff

import (
	"bytes"
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/hexcore/internal/hashing"
)

// anchor is a verified equal region shared by both buffers: length bytes
// starting at posA in the first buffer equal the bytes at posB in the
// second. Anchors seed the gap-fill walk.
type anchor struct {
	posA   int
	posB   int
	length int
}

// findAnchors discovers maximal matching regions between the two buffers.
//
// Window hashes for both sides are computed concurrently (independent
// inputs, no shared state), then a hash-to-offsets index over the second
// buffer drives candidate lookup for each first-buffer offset. First-buffer
// offsets are processed in descending order of their hash's frequency in
// the second buffer, which resolves ambiguous repeated content before the
// rare unambiguous windows are claimed. Hash equality is only a candidate
// signal: every anchor is verified by direct byte comparison across the
// window before it is trusted.
func (e *Engine) findAnchors(ctx context.Context, dataA, dataB []byte) ([]anchor, error) {
	w := e.windowSize

	var hashesA, hashesB []uint64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := hashing.WindowHashes(gctx, dataA, w)
		hashesA = h
		return err
	})
	g.Go(func() error {
		h, err := hashing.WindowHashes(gctx, dataB, w)
		hashesB = h
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := make(map[uint64][]int, len(hashesB))
	for off, h := range hashesB {
		if err := e.yield(ctx, off); err != nil {
			return nil, err
		}
		index[h] = append(index[h], off)
	}

	order := make([]int, len(hashesA))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		fi := len(index[hashesA[order[i]]])
		fj := len(index[hashesA[order[j]]])
		if fi != fj {
			return fi > fj
		}
		return order[i] < order[j]
	})

	usedA := make([]bool, len(dataA))
	usedB := make([]bool, len(dataB))
	var anchors []anchor

	for n, offA := range order {
		if err := e.yield(ctx, n); err != nil {
			return nil, err
		}
		if rangeUsed(usedA, offA, w) {
			continue
		}
		for _, offB := range index[hashesA[offA]] {
			if usedB[offB] || rangeUsed(usedB, offB, w) {
				continue
			}
			if !bytes.Equal(dataA[offA:offA+w], dataB[offB:offB+w]) {
				// Hash collision; keep looking.
				continue
			}
			anchors = append(anchors, extendAnchor(dataA, dataB, usedA, usedB, offA, offB, w))
			break
		}
	}

	sort.Slice(anchors, func(i, j int) bool {
		return anchors[i].posA < anchors[j].posA
	})
	return anchors, nil
}

// extendAnchor grows a verified window match backward and forward one byte
// at a time while bytes stay equal and neither side is already claimed,
// then marks the full range used on both sides.
func extendAnchor(dataA, dataB []byte, usedA, usedB []bool, posA, posB, length int) anchor {
	for posA > 0 && posB > 0 &&
		!usedA[posA-1] && !usedB[posB-1] &&
		dataA[posA-1] == dataB[posB-1] {
		posA--
		posB--
		length++
	}
	for posA+length < len(dataA) && posB+length < len(dataB) &&
		!usedA[posA+length] && !usedB[posB+length] &&
		dataA[posA+length] == dataB[posB+length] {
		length++
	}

	for i := 0; i < length; i++ {
		usedA[posA+i] = true
		usedB[posB+i] = true
	}
	return anchor{posA: posA, posB: posB, length: length}
}

// rangeUsed reports whether any position in [off, off+w) is claimed.
func rangeUsed(used []bool, off, w int) bool {
	for i := off; i < off+w; i++ {
		if used[i] {
			return true
		}
	}
	return false
}
