package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-markd"
	"github.com/alnah/go-markd/internal/config"
	"github.com/alnah/go-markd/internal/logging"
)

// Exit codes for the markd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All files converted or skipped
	ExitGeneral = 1 // At least one conversion failed, or unexpected error
	ExitUsage   = 2 // Invalid flags or config
	ExitIO      = 3 // Input missing or unreadable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Per-file failures are reported individually; the run itself is exit 1.
	if errors.Is(err, ErrConversionsFailed) {
		return ExitGeneral
	}

	// I/O errors (exit 3)
	if errors.Is(err, markd.ErrNotFound) ||
		errors.Is(err, ErrReadInputDir) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrUnknownLevel) ||
		errors.Is(err, logging.ErrUnknownFormat) {
		return ExitUsage
	}

	return ExitGeneral
}
