package main

import (
	"errors"

	"github.com/alnah/go-markd/internal/config"
	"github.com/alnah/go-markd/internal/logging"
)

// Exit codes for markd-server.
const (
	ExitSuccess = 0 // Stopped by a signal after a clean shutdown
	ExitGeneral = 1 // Server failed while running
	ExitUsage   = 2 // Invalid flags or config
	ExitListen  = 3 // Listen address unavailable
)

// ErrListen wraps failures to bind the listen address.
var ErrListen = errors.New("cannot listen")

// exitCodeFor returns the appropriate exit code for an error.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrListen) {
		return ExitListen
	}
	if errors.Is(err, ErrUsage) ||
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
