package config

// Tuning defaults. The window size is the anchor-discovery rolling window
// width; the yield interval is how many elements a scan processes between
// cooperative yields.
const (
	DefaultWindowSize    = 64
	DefaultYieldInterval = 4096
	DefaultMyersMaxBytes = 1 * 1024 * 1024
	DefaultDebounceMs    = 200

	StrategyHash  = "hash"
	StrategyMyers = "myers"
)

type Config struct {
	Compare Compare
	Watch   Watch
}

type Compare struct {
	WindowSize    int    // rolling window width in bytes
	YieldInterval int    // elements between cooperative yields
	Strategy      string // "hash" (scalable default) or "myers" (exact, bounded inputs)
	MyersMaxBytes int64  // refuse the myers strategy above this input size
}

type Watch struct {
	DebounceMs int // quiet period before a watched-file change triggers a recompare
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Compare: Compare{
			WindowSize:    DefaultWindowSize,
			YieldInterval: DefaultYieldInterval,
			Strategy:      StrategyHash,
			MyersMaxBytes: DefaultMyersMaxBytes,
		},
		Watch: Watch{
			DebounceMs: DefaultDebounceMs,
		},
	}
}
