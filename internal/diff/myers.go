package diff

import (
	"bytes"
	"context"
	"runtime"
)

// OpKind identifies one kind of edit operation in a Myers edit script.
type OpKind int

const (
	// OpKeep means the bytes are unchanged in both buffers.
	OpKeep OpKind = iota
	// OpDelete means the bytes exist only in the first buffer.
	OpDelete
	// OpInsert means the bytes exist only in the second buffer.
	OpInsert
)

// String returns a string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpKeep:
		return "keep"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Op is a run of identical edit operations. An edit script in forward
// order transforms the first buffer into the second: keep and delete runs
// consume first-buffer bytes, keep and insert runs produce second-buffer
// bytes.
type Op struct {
	Kind OpKind
	Len  int
}

// MyersDiff computes an exact minimal edit script with the classic
// O((N+M)*D) algorithm: a furthest-reaching forward search that snapshots
// the per-diagonal frontier for every edit distance, then backtracks
// through the snapshots.
//
// Cost grows with the edit distance D; inputs that share little content
// degrade toward O((N+M)^2) time and space for the snapshots. This
// strategy suits bounded or mostly-similar inputs where an exact minimal
// script matters; Compare is the scalable default for arbitrary large
// files.
func (e *Engine) MyersDiff(ctx context.Context, dataA, dataB []byte) ([]Op, error) {
	n, m := len(dataA), len(dataB)
	if n == 0 && m == 0 {
		return nil, nil
	}
	if n == 0 {
		return []Op{{Kind: OpInsert, Len: m}}, nil
	}
	if m == 0 {
		return []Op{{Kind: OpDelete, Len: n}}, nil
	}
	// Equal-length full equality skips the search entirely.
	if n == m && bytes.Equal(dataA, dataB) {
		return []Op{{Kind: OpKeep, Len: n}}, nil
	}

	trace, err := e.shortestEditTrace(ctx, dataA, dataB)
	if err != nil {
		return nil, wrapStage("myers-search", err)
	}
	return backtrack(trace, dataA, dataB), nil
}

// shortestEditTrace runs the forward search, recording the frontier array
// v (furthest x per diagonal k, stored at index k+offset) before each edit
// distance d is processed. The returned trace has one snapshot per d up to
// and including the distance that reached (n, m).
func (e *Engine) shortestEditTrace(ctx context.Context, dataA, dataB []byte) ([][]int, error) {
	n, m := len(dataA), len(dataB)
	limit := n + m
	offset := limit
	v := make([]int, 2*limit+1)

	var trace [][]int
	for d := 0; d <= limit; d++ {
		if d%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			runtime.Gosched()
		}

		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && dataA[x] == dataB[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				return trace, nil
			}
		}
	}
	// Unreachable: distance n+m always suffices.
	return trace, nil
}

// backtrack walks the trace from (n, m) to (0, 0), emitting operations in
// reverse, then reverses the run list into forward order.
func backtrack(trace [][]int, dataA, dataB []byte) []Op {
	n, m := len(dataA), len(dataB)
	offset := n + m
	x, y := n, m

	var rev []Op
	emit := func(kind OpKind) {
		if len(rev) > 0 && rev[len(rev)-1].Kind == kind {
			rev[len(rev)-1].Len++
			return
		}
		rev = append(rev, Op{Kind: kind, Len: 1})
	}

	for d := len(trace) - 1; d >= 0 && (x > 0 || y > 0); d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			emit(OpKeep)
			x--
			y--
		}
		if d > 0 {
			if x == prevX {
				emit(OpInsert)
			} else {
				emit(OpDelete)
			}
			x, y = prevX, prevY
		}
	}

	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// OpsToBlocks converts a Myers edit script into diff blocks. Delete runs
// become OnlyInFirst, insert runs become OnlyInSecond, keep runs are block
// boundaries. Myers has no Modified classification: a changed region shows
// up as an adjacent OnlyInFirst and OnlyInSecond pair, so the two
// strategies' block streams are not interchangeable without translation.
func OpsToBlocks(ops []Op) []Block {
	var blocks []Block
	posA, posB := 0, 0
	for _, op := range ops {
		switch op.Kind {
		case OpKeep:
			posA += op.Len
			posB += op.Len
		case OpDelete:
			blocks = append(blocks, Block{Type: OnlyInFirst, Start: posA, End: posA + op.Len - 1})
			posA += op.Len
		case OpInsert:
			blocks = append(blocks, Block{Type: OnlyInSecond, Start: posB, End: posB + op.Len - 1})
			posB += op.Len
		}
	}
	return mergeBlocks(blocks)
}

// CompareMyers is Compare using the exact Myers strategy, reporting the
// same Result shape.
func (e *Engine) CompareMyers(ctx context.Context, dataA, dataB []byte) (*Result, error) {
	lenA, lenB := len(dataA), len(dataB)
	if lenA == 0 && lenB == 0 {
		return &Result{MatchPercent: 100}, nil
	}

	ops, err := e.MyersDiff(ctx, dataA, dataB)
	if err != nil {
		return nil, err
	}

	matched := 0
	for _, op := range ops {
		if op.Kind == OpKeep {
			matched += op.Len
		}
	}

	result := &Result{Blocks: OpsToBlocks(ops), LenA: lenA, LenB: lenB}
	for _, blk := range result.Blocks {
		result.DifferingBytes += blk.Size()
	}
	longer := lenA
	if lenB > longer {
		longer = lenB
	}
	result.MatchPercent = float64(matched) / float64(longer) * 100
	return result, nil
}
