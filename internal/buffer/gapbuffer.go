// Package buffer implements the editable byte sequence backing a document.
//
// The implementation is a gap buffer: a contiguous store with an unused
// "gap" region that is relocated to the edit point. Edits clustered near a
// moving cursor cost amortized O(1); an edit far from the previous one pays
// for moving the gap across the intervening bytes.
package buffer

import (
	herrors "github.com/standardbeagle/hexcore/internal/errors"
)

// minGap is the smallest gap allocated on construction and growth.
const minGap = 64

// Buffer is a mutable byte sequence with cheap point edits near a cursor.
//
// Invariants: 0 <= gapStart <= gapEnd <= len(store). Logical index i maps
// to physical index i when i < gapStart, otherwise i + (gapEnd - gapStart).
//
// A Buffer is exclusively owned by one editing session. It provides no
// internal locking: callers must not mutate a Buffer while a comparison
// holding a view of it is in flight.
type Buffer struct {
	store    []byte
	gapStart int
	gapEnd   int
}

// New creates a Buffer holding a copy of initial. The gap starts at the
// end of the content, which matches the common append-heavy access pattern
// right after opening a file.
func New(initial []byte) *Buffer {
	store := make([]byte, len(initial)+minGap)
	copy(store, initial)
	return &Buffer{
		store:    store,
		gapStart: len(initial),
		gapEnd:   len(initial) + minGap,
	}
}

// Len returns the current logical byte count.
func (b *Buffer) Len() int {
	return len(b.store) - b.gapSize()
}

func (b *Buffer) gapSize() int {
	return b.gapEnd - b.gapStart
}

// physical maps a logical index to its position in the backing store.
// The index must already be validated.
func (b *Buffer) physical(i int) int {
	if i < b.gapStart {
		return i
	}
	return i + b.gapSize()
}

// Byte returns the byte at logical index i.
func (b *Buffer) Byte(i int) (byte, error) {
	if i < 0 || i >= b.Len() {
		return 0, herrors.NewOutOfRangeError("read", i, b.Len())
	}
	return b.store[b.physical(i)], nil
}

// SetByte overwrites the byte at logical index i and returns the previous
// value so callers can record an inverse operation for undo.
func (b *Buffer) SetByte(i int, v byte) (byte, error) {
	if i < 0 || i >= b.Len() {
		return 0, herrors.NewOutOfRangeError("write", i, b.Len())
	}
	p := b.physical(i)
	prev := b.store[p]
	b.store[p] = v
	return prev, nil
}

// InsertAt inserts a single byte so that it occupies logical index i.
// i may equal Len(), which appends.
func (b *Buffer) InsertAt(i int, v byte) error {
	if i < 0 || i > b.Len() {
		return herrors.NewOutOfRangeError("insert", i, b.Len())
	}
	b.moveGap(i)
	b.ensureGap(1)
	b.store[b.gapStart] = v
	b.gapStart++
	return nil
}

// InsertBytes inserts data starting at logical index i with a single gap
// move, regardless of the sequence length.
func (b *Buffer) InsertBytes(i int, data []byte) error {
	if i < 0 || i > b.Len() {
		return herrors.NewOutOfRangeError("insert", i, b.Len())
	}
	if len(data) == 0 {
		return nil
	}
	b.moveGap(i)
	b.ensureGap(len(data))
	copy(b.store[b.gapStart:], data)
	b.gapStart += len(data)
	return nil
}

// DeleteAt removes the byte at logical index i and returns it.
func (b *Buffer) DeleteAt(i int) (byte, error) {
	if i < 0 || i >= b.Len() {
		return 0, herrors.NewOutOfRangeError("delete", i, b.Len())
	}
	b.moveGap(i)
	removed := b.store[b.gapEnd]
	b.gapEnd++
	return removed, nil
}

// DeleteRange removes the half-open logical range [start, end) with one
// gap move and returns the removed bytes in logical order. Widening the
// gap over the range is O(1) in the range length; only the move to the
// range boundary costs copies.
func (b *Buffer) DeleteRange(start, end int) ([]byte, error) {
	if start < 0 || start > b.Len() {
		return nil, herrors.NewOutOfRangeError("delete-range", start, b.Len())
	}
	if end < start || end > b.Len() {
		return nil, herrors.NewOutOfRangeError("delete-range", end, b.Len())
	}
	if start == end {
		return nil, nil
	}
	b.moveGap(start)
	n := end - start
	removed := make([]byte, n)
	copy(removed, b.store[b.gapEnd:b.gapEnd+n])
	b.gapEnd += n
	return removed, nil
}

// Bytes materializes the full logical content: pre-gap bytes followed by
// post-gap bytes. The returned slice is a copy.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, b.Len())
	n := copy(out, b.store[:b.gapStart])
	copy(out[n:], b.store[b.gapEnd:])
	return out
}

// Slice materializes the half-open logical range [start, end) as a copy.
func (b *Buffer) Slice(start, end int) ([]byte, error) {
	if start < 0 || start > b.Len() {
		return nil, herrors.NewOutOfRangeError("slice", start, b.Len())
	}
	if end < start || end > b.Len() {
		return nil, herrors.NewOutOfRangeError("slice", end, b.Len())
	}
	out := make([]byte, end-start)
	if end <= b.gapStart || start >= b.gapStart {
		copy(out, b.store[b.physical(start):b.physical(start)+len(out)])
		return out, nil
	}
	n := copy(out, b.store[start:b.gapStart])
	copy(out[n:], b.store[b.gapEnd:b.gapEnd+(end-b.gapStart)])
	return out, nil
}

// moveGap relocates the gap so that gapStart == pos. pos must be a valid
// insert position in [0, Len()].
func (b *Buffer) moveGap(pos int) {
	if pos == b.gapStart {
		return
	}
	if pos < b.gapStart {
		delta := b.gapStart - pos
		copy(b.store[b.gapEnd-delta:b.gapEnd], b.store[pos:b.gapStart])
		b.gapStart -= delta
		b.gapEnd -= delta
	} else {
		delta := pos - b.gapStart
		copy(b.store[b.gapStart:b.gapStart+delta], b.store[b.gapEnd:b.gapEnd+delta])
		b.gapStart += delta
		b.gapEnd += delta
	}
}

// ensureGap grows the store so at least n bytes fit in the gap. Growth
// doubles the store (amortized O(1) inserts) with a minGap floor.
func (b *Buffer) ensureGap(n int) {
	if b.gapSize() >= n {
		return
	}
	grown := len(b.store) * 2
	if grown < len(b.store)+n+minGap {
		grown = len(b.store) + n + minGap
	}
	store := make([]byte, grown)
	copy(store, b.store[:b.gapStart])
	tail := len(b.store) - b.gapEnd
	copy(store[grown-tail:], b.store[b.gapEnd:])
	b.store = store
	b.gapEnd = grown - tail
}
