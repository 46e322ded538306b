// Package diff compares two byte sequences and reports the minimal set of
// differing regions, scaling to large files through rolling-hash anchor
// discovery with a cooperative yielding model. A classic Myers
// shortest-edit-script strategy is available as an exact alternative for
// smaller inputs.
package diff

// BlockType classifies a differing region.
type BlockType int

const (
	// Modified means the region holds different bytes in both buffers.
	Modified BlockType = iota
	// OnlyInFirst means the bytes exist only in the first buffer.
	OnlyInFirst
	// OnlyInSecond means the bytes exist only in the second buffer.
	OnlyInSecond
)

// String returns a string representation of the BlockType.
func (t BlockType) String() string {
	switch t {
	case Modified:
		return "modified"
	case OnlyInFirst:
		return "only-in-first"
	case OnlyInSecond:
		return "only-in-second"
	default:
		return "unknown"
	}
}

// Block is a maximal contiguous differing region. Start and End are an
// inclusive byte range in the coordinates of the buffer that owns the
// bytes: the first buffer for Modified and OnlyInFirst, the second buffer
// for OnlyInSecond. Blocks are produced in ascending offset order, never
// overlap, and adjacent blocks of the same type are merged.
type Block struct {
	Type  BlockType
	Start int
	End   int
}

// Size returns the number of bytes the block covers.
func (b Block) Size() int {
	return b.End - b.Start + 1
}

// Result is a completed comparison. A Result is only returned for a
// comparison that ran to the end: a cancelled comparison surfaces as an
// error, never as a partial Result.
type Result struct {
	Blocks []Block

	// DifferingBytes is the sum of all block sizes.
	DifferingBytes int

	// MatchPercent is matched bytes over max(LenA, LenB) as a
	// percentage, 100.0 when both buffers are empty.
	MatchPercent float64

	LenA int
	LenB int
}

// Identical reports whether the comparison found no differences.
func (r *Result) Identical() bool {
	return len(r.Blocks) == 0
}
