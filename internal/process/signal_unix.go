//go:build !windows

package process

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// NotifyContext returns a context that is canceled when an interrupt
// or termination signal is received. Call stop() to release resources.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
