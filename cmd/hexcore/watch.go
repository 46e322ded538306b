package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	herrors "github.com/standardbeagle/hexcore/internal/errors"
)

// runWatch compares the two files, then recompares after every debounced
// change to either one until interrupted.
func runWatch(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("watch requires exactly two file arguments", 1)
	}
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	pathA, pathB := c.Args().Get(0), c.Args().Get(1)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range []string{pathA, pathB} {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond

	recompare := func() {
		result, err := compareFiles(ctx, cfg, pathA, pathB)
		if err != nil {
			if herrors.IsCancelled(err) {
				return
			}
			log.Printf("compare failed: %v", err)
			return
		}
		fmt.Printf("--- %s\n", time.Now().Format(time.TimeOnly))
		printText(os.Stdout, pathA, pathB, result)
	}

	// Fires immediately for the initial comparison, then only after a
	// quiet period following change events.
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often replace files on save; re-add the path
			// so the watch survives the rename.
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				_ = watcher.Add(ev.Name)
			}
			timer.Reset(debounce)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", watchErr)
		case <-timer.C:
			recompare()
		}
	}
}
