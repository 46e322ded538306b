package config

import (
	"errors"
	"fmt"

	herrors "github.com/standardbeagle/hexcore/internal/errors"
)

// Validator validates configuration values.
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns an error describing the first invalid field.
func (v *Validator) Validate(cfg *Config) error {
	if err := v.validateCompare(&cfg.Compare); err != nil {
		return err
	}
	return v.validateWatch(&cfg.Watch)
}

func (v *Validator) validateCompare(c *Compare) error {
	if c.WindowSize <= 0 {
		return herrors.NewConfigError("compare.window_size", fmt.Sprint(c.WindowSize),
			errors.New("must be positive"))
	}
	if c.YieldInterval <= 0 {
		return herrors.NewConfigError("compare.yield_interval", fmt.Sprint(c.YieldInterval),
			errors.New("must be positive"))
	}
	if c.Strategy != StrategyHash && c.Strategy != StrategyMyers {
		return herrors.NewConfigError("compare.strategy", c.Strategy,
			fmt.Errorf("must be %q or %q", StrategyHash, StrategyMyers))
	}
	if c.MyersMaxBytes <= 0 {
		return herrors.NewConfigError("compare.myers_max_bytes", fmt.Sprint(c.MyersMaxBytes),
			errors.New("must be positive"))
	}
	return nil
}

func (v *Validator) validateWatch(w *Watch) error {
	if w.DebounceMs < 0 {
		return herrors.NewConfigError("watch.debounce_ms", fmt.Sprint(w.DebounceMs),
			errors.New("must not be negative"))
	}
	return nil
}
