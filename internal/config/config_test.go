package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultWindowSize, cfg.Compare.WindowSize)
	assert.Equal(t, DefaultYieldInterval, cfg.Compare.YieldInterval)
	assert.Equal(t, StrategyHash, cfg.Compare.Strategy)
	assert.Equal(t, int64(DefaultMyersMaxBytes), cfg.Compare.MyersMaxBytes)
	assert.Equal(t, DefaultDebounceMs, cfg.Watch.DebounceMs)

	require.NoError(t, NewValidator().Validate(cfg))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".hexcore.kdl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_KDLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".hexcore.kdl")
	content := `
compare {
    window_size 32
    yield_interval 1000
    strategy "myers"
    myers_max_bytes "2MB"
}
watch {
    debounce_ms 500
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Compare.WindowSize)
	assert.Equal(t, 1000, cfg.Compare.YieldInterval)
	assert.Equal(t, StrategyMyers, cfg.Compare.Strategy)
	assert.Equal(t, int64(2*1024*1024), cfg.Compare.MyersMaxBytes)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
}

func TestLoad_PartialOverrideKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".hexcore.kdl")
	require.NoError(t, os.WriteFile(path, []byte("compare {\n    window_size 128\n}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Compare.WindowSize)
	assert.Equal(t, DefaultYieldInterval, cfg.Compare.YieldInterval)
	assert.Equal(t, StrategyHash, cfg.Compare.Strategy)
}

func TestLoad_MalformedKDL(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".hexcore.kdl")
	require.NoError(t, os.WriteFile(path, []byte("compare {\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	cfg := Default()
	cfg.Compare.WindowSize = 0
	assert.ErrorContains(t, v.Validate(cfg), "window_size")

	cfg = Default()
	cfg.Compare.YieldInterval = -1
	assert.ErrorContains(t, v.Validate(cfg), "yield_interval")

	cfg = Default()
	cfg.Compare.Strategy = "exact"
	assert.ErrorContains(t, v.Validate(cfg), "strategy")

	cfg = Default()
	cfg.Compare.MyersMaxBytes = 0
	assert.ErrorContains(t, v.Validate(cfg), "myers_max_bytes")

	cfg = Default()
	cfg.Watch.DebounceMs = -5
	assert.ErrorContains(t, v.Validate(cfg), "debounce_ms")
}

func TestParseSize(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int64
	}{
		{"64KB", 64 * 1024},
		{"1MB", 1024 * 1024},
		{"2GB", 2 * 1024 * 1024 * 1024},
		{"512B", 512},
		{"1024", 1024},
	} {
		got, err := parseSize(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := parseSize("lots")
	assert.Error(t, err)
}
