package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-markd"
	"github.com/alnah/go-markd/internal/fileutil"
	"github.com/alnah/go-markd/internal/hints"
)

// Output files always get this extension.
const outputExt = "html"

// dirPermissions is used when creating the output directory.
const dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute

// Sentinel errors for file discovery.
var (
	ErrReadInputDir = errors.New("failed to read input directory")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discovery is the outcome of resolving the input path.
type discovery struct {
	files []FileToConvert
	isDir bool
}

// discoverFiles resolves the jobs for inputPath.
//
// A file yields one job whose output is outputPath with its extension forced
// to .html. A directory yields one job per direct child that is not itself a
// directory, writing outputPath/<name>.html; outputPath is created first and a
// failure to create it is logged, not returned. Hidden children are kept so
// the converter can report them as skipped.
func discoverFiles(inputPath, outputPath string, logger *slog.Logger) (*discovery, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s%s", markd.ErrNotFound, inputPath, hints.ForMissingInput())
		}
		return nil, fmt.Errorf("%w: %s: %v", markd.ErrIO, inputPath, err)
	}

	if !info.IsDir() {
		out, err := fileutil.ForceExtension(outputPath, outputExt)
		if err != nil {
			return nil, err
		}
		return &discovery{files: []FileToConvert{{InputPath: inputPath, OutputPath: out}}}, nil
	}

	if err := os.MkdirAll(outputPath, dirPermissions); err != nil {
		logger.Error("Creating output directory failed", "path", outputPath, "error", err, "hint", hints.ForOutputDirectory())
	}

	entries, err := os.ReadDir(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadInputDir, inputPath, err)
	}

	files := make([]FileToConvert, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			logger.Debug("Skipping subdirectory", "path", filepath.Join(inputPath, entry.Name()))
			continue
		}
		files = append(files, FileToConvert{
			InputPath:  filepath.Join(inputPath, entry.Name()),
			OutputPath: outputFor(outputPath, entry.Name()),
		})
	}
	return &discovery{files: files, isDir: true}, nil
}

// outputFor returns the output path for an input named name in outputDir.
func outputFor(outputDir, name string) string {
	return filepath.Join(outputDir, fileutil.StripExtension(name)+"."+outputExt)
}
