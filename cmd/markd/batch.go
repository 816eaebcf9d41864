package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alnah/go-markd"
	"github.com/alnah/go-markd/internal/fileutil"
	"github.com/alnah/go-markd/internal/hints"
)

// Sentinel errors for batch operations.
var (
	ErrWriteHTML         = errors.New("failed to write HTML file")
	ErrConversionsFailed = errors.New("conversions failed")
)

// DocumentConverter is the interface for the conversion service.
type DocumentConverter interface {
	Convert(ctx context.Context, path string) (*markd.Document, error)
}

// Compile-time interface implementation check.
var _ DocumentConverter = (*markd.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Skipped    bool // rejected by the hidden-file policy; not a failure
	Duration   time.Duration
}

// convertBatch converts files one after another on a background goroutine
// and waits for it to finish. Results are in input order.
func convertBatch(ctx context.Context, conv DocumentConverter, files []FileToConvert) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i, f := range files {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath, Err: err}
				continue
			}
			results[i] = convertFile(ctx, conv, f)
		}
	}()
	wg.Wait()

	return results
}

// convertFile converts a single file and writes its output atomically.
func convertFile(ctx context.Context, conv DocumentConverter, f FileToConvert) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	doc, err := conv.Convert(ctx, f.InputPath)
	if err != nil {
		result.Err = err
		result.Skipped = errors.Is(err, markd.ErrUnsupported)
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(doc.HTML)); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded, failed and skipped conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// countResults tallies conversion outcomes.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Skipped:
			summary.Skipped++
		case r.Err != nil:
			summary.Failed++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and the summary line.
// Returns the number of failed conversions.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		switch {
		case r.Skipped:
			if !quiet {
				fmt.Fprintf(env.Stdout, "Skipped %s%s\n", r.InputPath, hints.ForHiddenFile())
			}
		case r.Err != nil:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
		case quiet:
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet {
		fmt.Fprintf(env.Stdout, "Done! %d succeeded, %d failed, %d skipped\n", summary.Succeeded, summary.Failed, summary.Skipped)
	}

	return summary.Failed
}
