package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/hexcore/internal/config"
	"github.com/standardbeagle/hexcore/internal/diff"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestCompareFiles_HashStrategy(t *testing.T) {
	dataA := []byte("the quick brown fox jumps over the lazy dog")
	dataB := []byte("the quick brown fox jumps over the lazy cat")
	pathA := writeTempFile(t, "a.bin", dataA)
	pathB := writeTempFile(t, "b.bin", dataB)

	result, err := compareFiles(context.Background(), config.Default(), pathA, pathB)
	require.NoError(t, err)

	assert.Equal(t, len(dataA), result.LenA)
	assert.NotEmpty(t, result.Blocks)
}

func TestCompareFiles_MyersSizeLimit(t *testing.T) {
	pathA := writeTempFile(t, "a.bin", make([]byte, 64))
	pathB := writeTempFile(t, "b.bin", make([]byte, 64))

	cfg := config.Default()
	cfg.Compare.Strategy = config.StrategyMyers
	cfg.Compare.MyersMaxBytes = 100

	_, err := compareFiles(context.Background(), cfg, pathA, pathB)
	assert.ErrorContains(t, err, "myers strategy limit")

	cfg.Compare.MyersMaxBytes = 1024
	result, err := compareFiles(context.Background(), cfg, pathA, pathB)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.MatchPercent)
}

func TestCompareFiles_MissingFile(t *testing.T) {
	pathA := writeTempFile(t, "a.bin", []byte("x"))
	_, err := compareFiles(context.Background(), config.Default(), pathA, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestPrintText(t *testing.T) {
	result := &diff.Result{
		Blocks: []diff.Block{
			{Type: diff.Modified, Start: 30, End: 30},
			{Type: diff.OnlyInSecond, Start: 64, End: 79},
		},
		DifferingBytes: 17,
		MatchPercent:   98.4375,
		LenA:           64,
		LenB:           80,
	}

	var buf bytes.Buffer
	printText(&buf, "a.bin", "b.bin", result)
	out := buf.String()

	assert.Contains(t, out, "a.bin (64 bytes) vs b.bin (80 bytes)")
	assert.Contains(t, out, "match: 98.44%")
	assert.Contains(t, out, "modified")
	assert.Contains(t, out, "0x0000001e-0x0000001e  1 byte")
	assert.Contains(t, out, "only-in-second")
}

func TestPrintJSON(t *testing.T) {
	result := &diff.Result{
		Blocks:         []diff.Block{{Type: diff.OnlyInFirst, Start: 0, End: 99}},
		DifferingBytes: 100,
		LenA:           100,
	}

	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, "a.bin", "b.bin", result))

	var decoded resultJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "a.bin", decoded.File1)
	assert.Equal(t, 100, decoded.Len1)
	require.Len(t, decoded.Blocks, 1)
	assert.Equal(t, "only-in-first", decoded.Blocks[0].Type)
	assert.Equal(t, 100, decoded.Blocks[0].Size)
}
