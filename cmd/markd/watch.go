package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-markd/internal/fileutil"
	"github.com/alnah/go-markd/internal/watcher"
)

// watchPlan maps watched paths to conversion jobs.
type watchPlan struct {
	input  string // cleaned input path
	output string
	isDir  bool
	// outputs land next to inputs; generated pages must not retrigger a run
	sameDir bool
}

// newWatchPlan inspects inputPath and prepares the plan for a watch loop.
func newWatchPlan(inputPath, outputPath string) (*watchPlan, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	p := &watchPlan{
		input:  filepath.Clean(inputPath),
		output: outputPath,
		isDir:  info.IsDir(),
	}
	if p.isDir {
		p.sameDir = sameDir(p.input, outputPath)
	}
	return p, nil
}

// dir returns the directory handed to the watcher.
func (p *watchPlan) dir() string {
	if p.isDir {
		return p.input
	}
	return filepath.Dir(p.input)
}

// filters returns the watcher filters for the plan.
func (p *watchPlan) filters() []watcher.Filter {
	fs := []watcher.Filter{watcher.NotHidden}
	if !p.isDir {
		return append(fs, watcher.Exactly(p.input))
	}
	fs = append(fs, watcher.InDir(p.input))
	if p.sameDir {
		fs = append(fs, func(path string) bool {
			return !strings.EqualFold(filepath.Ext(path), "."+outputExt)
		})
	}
	return fs
}

// jobs turns a batch of events into conversion jobs, skipping removals and
// directories.
func (p *watchPlan) jobs(events []watcher.Event) []FileToConvert {
	var files []FileToConvert
	for _, e := range events {
		if e.Op.Gone() {
			continue
		}
		if !fileutil.FileExists(e.Path) {
			continue
		}
		if !p.isDir {
			out, err := fileutil.ForceExtension(p.output, outputExt)
			if err != nil {
				continue
			}
			files = append(files, FileToConvert{InputPath: e.Path, OutputPath: out})
			continue
		}
		files = append(files, FileToConvert{
			InputPath:  e.Path,
			OutputPath: outputFor(p.output, filepath.Base(e.Path)),
		})
	}
	return files
}

// runWatch converts changed inputs until ctx is cancelled.
// Per-file failures are printed and do not stop the loop.
func runWatch(ctx context.Context, conv DocumentConverter, inputPath, outputPath string, flags *batchFlags, env *Environment, logger *slog.Logger) error {
	plan, err := newWatchPlan(inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("watching %s: %w", inputPath, err)
	}

	w, err := watcher.New(watcher.DefaultDelay, watcher.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := w.Add(plan.dir()); err != nil {
		_ = w.Close()
		return err
	}
	for _, f := range plan.filters() {
		w.AddFilter(f)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", inputPath)
	}

	return w.Run(ctx, func(ctx context.Context, events []watcher.Event) {
		files := plan.jobs(events)
		if len(files) == 0 {
			return
		}
		logger.Debug("Change detected", "files", len(files))
		printResults(convertBatch(ctx, conv, files), flags.common.quiet, flags.common.verbose, env)
	})
}

// sameDir reports whether a and b name the same directory.
func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
