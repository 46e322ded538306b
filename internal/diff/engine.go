package diff

import (
	"context"
	stderrors "errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/hexcore/internal/buffer"
	herrors "github.com/standardbeagle/hexcore/internal/errors"
	"github.com/standardbeagle/hexcore/internal/hashing"
)

// defaultYieldInterval is how many elements a scan loop processes between
// cooperative yields.
const defaultYieldInterval = 4096

// Engine runs comparisons. An Engine is stateless between calls and safe
// for use by multiple goroutines as long as each call gets its own pair of
// buffer views.
type Engine struct {
	windowSize    int
	yieldInterval int
}

// NewEngine creates an Engine. Non-positive arguments fall back to the
// defaults (64-byte window, yield every 4096 elements).
func NewEngine(windowSize, yieldInterval int) *Engine {
	if windowSize <= 0 {
		windowSize = hashing.WindowSize
	}
	if yieldInterval <= 0 {
		yieldInterval = defaultYieldInterval
	}
	return &Engine{windowSize: windowSize, yieldInterval: yieldInterval}
}

// DefaultEngine returns an Engine with default tuning.
func DefaultEngine() *Engine {
	return NewEngine(0, 0)
}

// Compare diffs the logical contents of two buffers using the rolling-hash
// anchor strategy. The buffers must not be mutated while the comparison is
// in flight; Compare takes its own materialized snapshot up front, so the
// caller contract covers only the duration of the Bytes calls.
//
// Cancellation through ctx is honored at every cooperative yield point and
// surfaces as a typed cancelled error, never as a partial Result.
func (e *Engine) Compare(ctx context.Context, a, b *buffer.Buffer) (*Result, error) {
	return e.CompareBytes(ctx, a.Bytes(), b.Bytes())
}

// CompareBytes is Compare for callers that already hold contiguous bytes.
func (e *Engine) CompareBytes(ctx context.Context, dataA, dataB []byte) (*Result, error) {
	lenA, lenB := len(dataA), len(dataB)
	if lenA == 0 && lenB == 0 {
		return &Result{MatchPercent: 100}, nil
	}

	// Fast path: equal lengths and equal whole-buffer hashes means no
	// detailed comparison at all. Re-running a comparison after no
	// changes is the common case and must stay O(n).
	if lenA == lenB {
		equal, err := e.fastEqual(ctx, dataA, dataB)
		if err != nil {
			return nil, wrapStage("fast-equal", err)
		}
		if equal {
			return &Result{MatchPercent: 100, LenA: lenA, LenB: lenB}, nil
		}
	}

	// Buffers shorter than the window skip anchor discovery entirely
	// and fall straight to byte-by-byte comparison.
	var anchors []anchor
	if lenA >= e.windowSize && lenB >= e.windowSize {
		var err error
		anchors, err = e.findAnchors(ctx, dataA, dataB)
		if err != nil {
			return nil, wrapStage("anchor-search", err)
		}
	}

	blocks, matched, err := e.fillGaps(ctx, dataA, dataB, anchors)
	if err != nil {
		return nil, wrapStage("gap-fill", err)
	}
	blocks = mergeBlocks(blocks)

	result := &Result{Blocks: blocks, LenA: lenA, LenB: lenB}
	for _, blk := range blocks {
		result.DifferingBytes += blk.Size()
	}
	longer := lenA
	if lenB > longer {
		longer = lenB
	}
	result.MatchPercent = float64(matched) / float64(longer) * 100
	return result, nil
}

// fastEqual compares whole-buffer chunked hashes, one goroutine per side.
// The two computations share no mutable state.
func (e *Engine) fastEqual(ctx context.Context, dataA, dataB []byte) (bool, error) {
	var hashA, hashB uint64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := hashing.ChunkedHash(gctx, dataA)
		hashA = h
		return err
	})
	g.Go(func() error {
		h, err := hashing.ChunkedHash(gctx, dataB)
		hashB = h
		return err
	})
	if err := g.Wait(); err != nil {
		return false, err
	}
	return hashA == hashB, nil
}

// fillGaps walks the anchors in first-buffer order and byte-compares the
// unmatched regions between them. Anchors that retroactively overlap an
// already-committed region are discarded: discovery order is driven by
// hash frequency, not offset, so a later anchor can land behind the
// current position.
func (e *Engine) fillGaps(ctx context.Context, dataA, dataB []byte, anchors []anchor) ([]Block, int, error) {
	var blocks []Block
	matched := 0
	prevA, prevB := 0, 0

	for i, anc := range anchors {
		if err := e.yield(ctx, i); err != nil {
			return nil, 0, err
		}
		if anc.posA < prevA || anc.posB < prevB {
			continue
		}
		m, err := e.gapCompare(ctx, dataA[prevA:anc.posA], dataB[prevB:anc.posB], prevA, prevB, &blocks)
		if err != nil {
			return nil, 0, err
		}
		matched += m + anc.length
		prevA = anc.posA + anc.length
		prevB = anc.posB + anc.length
	}

	m, err := e.gapCompare(ctx, dataA[prevA:], dataB[prevB:], prevA, prevB, &blocks)
	if err != nil {
		return nil, 0, err
	}
	matched += m
	return blocks, matched, nil
}

// gapCompare byte-compares two unmatched gap regions. Equal positions
// count as matches, unequal positions accumulate into Modified blocks in
// first-buffer coordinates, and the length mismatch at the tail becomes a
// single OnlyInFirst or OnlyInSecond block for the excess.
func (e *Engine) gapCompare(ctx context.Context, gapA, gapB []byte, baseA, baseB int, blocks *[]Block) (int, error) {
	n := len(gapA)
	if len(gapB) < n {
		n = len(gapB)
	}

	matched := 0
	runStart := -1
	for i := 0; i < n; i++ {
		if err := e.yield(ctx, i); err != nil {
			return 0, err
		}
		if gapA[i] == gapB[i] {
			matched++
			if runStart >= 0 {
				*blocks = append(*blocks, Block{Type: Modified, Start: baseA + runStart, End: baseA + i - 1})
				runStart = -1
			}
		} else if runStart < 0 {
			runStart = i
		}
	}
	if runStart >= 0 {
		*blocks = append(*blocks, Block{Type: Modified, Start: baseA + runStart, End: baseA + n - 1})
	}

	if len(gapA) > n {
		*blocks = append(*blocks, Block{Type: OnlyInFirst, Start: baseA + n, End: baseA + len(gapA) - 1})
	}
	if len(gapB) > n {
		*blocks = append(*blocks, Block{Type: OnlyInSecond, Start: baseB + n, End: baseB + len(gapB) - 1})
	}
	return matched, nil
}

// mergeBlocks coalesces adjacent blocks of identical type that share a
// boundary. Input blocks arrive in ascending order per coordinate space.
func mergeBlocks(blocks []Block) []Block {
	if len(blocks) < 2 {
		return blocks
	}
	out := blocks[:1]
	for _, blk := range blocks[1:] {
		last := &out[len(out)-1]
		if blk.Type == last.Type && blk.Start == last.End+1 {
			last.End = blk.End
			continue
		}
		out = append(out, blk)
	}
	return out
}

// yield hands control back to the scheduler every yieldInterval elements
// and checks for cancellation. i is the loop counter.
func (e *Engine) yield(ctx context.Context, i int) error {
	if i == 0 || i%e.yieldInterval != 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	runtime.Gosched()
	return nil
}

// wrapStage converts a stage failure into the typed error taxonomy,
// keeping cancellation distinguishable from real failures.
func wrapStage(stage string, err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return herrors.NewCancelledError(stage, err)
	}
	return herrors.NewCompareError(stage, err)
}
