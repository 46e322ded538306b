package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/hexcore/internal/buffer"
	"github.com/standardbeagle/hexcore/internal/config"
	"github.com/standardbeagle/hexcore/internal/diff"
	herrors "github.com/standardbeagle/hexcore/internal/errors"
)

func runCompare(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("compare requires exactly two file arguments", 1)
	}
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	// Ctrl-C cancels the comparison at the next cooperative yield point.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pathA, pathB := c.Args().Get(0), c.Args().Get(1)
	result, err := compareFiles(ctx, cfg, pathA, pathB)
	if err != nil {
		if herrors.IsCancelled(err) {
			return cli.Exit("comparison cancelled", 130)
		}
		return err
	}

	if c.Bool("json") {
		return printJSON(os.Stdout, pathA, pathB, result)
	}
	printText(os.Stdout, pathA, pathB, result)
	return nil
}

// compareFiles loads both files into byte buffers and runs the configured
// strategy.
func compareFiles(ctx context.Context, cfg *config.Config, pathA, pathB string) (*diff.Result, error) {
	dataA, err := os.ReadFile(pathA)
	if err != nil {
		return nil, err
	}
	dataB, err := os.ReadFile(pathB)
	if err != nil {
		return nil, err
	}

	bufA := buffer.New(dataA)
	bufB := buffer.New(dataB)
	engine := diff.NewEngine(cfg.Compare.WindowSize, cfg.Compare.YieldInterval)

	if cfg.Compare.Strategy == config.StrategyMyers {
		if size := int64(bufA.Len()) + int64(bufB.Len()); size > cfg.Compare.MyersMaxBytes {
			return nil, fmt.Errorf("inputs total %d bytes, above the myers strategy limit of %d; use the hash strategy or raise compare.myers_max_bytes",
				size, cfg.Compare.MyersMaxBytes)
		}
		return engine.CompareMyers(ctx, bufA.Bytes(), bufB.Bytes())
	}
	return engine.Compare(ctx, bufA, bufB)
}

func printText(w io.Writer, pathA, pathB string, result *diff.Result) {
	fmt.Fprintf(w, "%s (%d bytes) vs %s (%d bytes)\n", pathA, result.LenA, pathB, result.LenB)
	fmt.Fprintf(w, "match: %.2f%%  differing bytes: %d  blocks: %d\n",
		result.MatchPercent, result.DifferingBytes, len(result.Blocks))
	for _, blk := range result.Blocks {
		unit := "bytes"
		if blk.Size() == 1 {
			unit = "byte"
		}
		fmt.Fprintf(w, "  %-15s 0x%08x-0x%08x  %d %s\n",
			blk.Type, blk.Start, blk.End, blk.Size(), unit)
	}
}

type blockJSON struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Size  int    `json:"size"`
}

type resultJSON struct {
	File1          string      `json:"file1"`
	File2          string      `json:"file2"`
	Len1           int         `json:"len1"`
	Len2           int         `json:"len2"`
	MatchPercent   float64     `json:"match_percent"`
	DifferingBytes int         `json:"differing_bytes"`
	Blocks         []blockJSON `json:"blocks"`
}

func printJSON(w io.Writer, pathA, pathB string, result *diff.Result) error {
	out := resultJSON{
		File1:          pathA,
		File2:          pathB,
		Len1:           result.LenA,
		Len2:           result.LenB,
		MatchPercent:   result.MatchPercent,
		DifferingBytes: result.DifferingBytes,
		Blocks:         make([]blockJSON, 0, len(result.Blocks)),
	}
	for _, blk := range result.Blocks {
		out.Blocks = append(out.Blocks, blockJSON{
			Type:  blk.Type.String(),
			Start: blk.Start,
			End:   blk.End,
			Size:  blk.Size(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
