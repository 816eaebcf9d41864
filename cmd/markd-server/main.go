package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-markd"
	"github.com/alnah/go-markd/internal/config"
	"github.com/alnah/go-markd/internal/fileutil"
	"github.com/alnah/go-markd/internal/hints"
	"github.com/alnah/go-markd/internal/logging"
	"github.com/alnah/go-markd/internal/process"
	"github.com/alnah/go-markd/internal/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUsage reports unexpected arguments.
var ErrUsage = errors.New("invalid usage")

func main() {
	os.Exit(runMain(context.Background(), os.Args, DefaultEnv()))
}

// runMain runs the server until ctx is cancelled or a signal arrives, and
// returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "markd-server %s\n", Version)
		return ExitSuccess
	}
	if len(positional) > 0 {
		err := fmt.Errorf("%w: unexpected arguments %v", ErrUsage, positional)
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	ctx, stop := process.NotifyContext(ctx)
	defer stop()

	if err := run(ctx, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run resolves configuration, builds the server and serves until ctx is done.
func run(ctx context.Context, flags *serverFlags, env *Environment) error {
	cfg, err := resolveConfig(flags, env.Getenv)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: env.Stderr,
	})
	if err != nil {
		return err
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	addr, err := config.NormalizeListenAddr(cfg.Server.Addr)
	if err != nil {
		return err
	}

	var css string
	if cfg.Document.CSSFile != "" {
		data, err := os.ReadFile(cfg.Document.CSSFile) // #nosec G304 -- configured path
		if err != nil {
			return fmt.Errorf("reading CSS file: %w", err)
		}
		css = string(data)
	}

	conv := markd.NewConverter(
		markd.WithLogger(logger),
		markd.WithCSS(css),
		markd.WithDefaultTitle(cfg.Document.DefaultTitle),
		markd.WithNormalizeLineEndings(cfg.Document.NormalizeNewlines),
	)
	srv := server.New(conv, cfg.Server.DataDir, server.WithLogger(logger))
	checkDataDir(srv.DataRoot(), logger)

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "listen" {
			return fmt.Errorf("%w: %v%s", ErrListen, err, hints.ForListenAddr(addr))
		}
		return err
	}
	return nil
}

// checkDataDir logs a warning when the data directory is missing or cannot
// be listed. The server still starts; listing requests answer 500 until it is fixed.
func checkDataDir(dir string, logger *slog.Logger) {
	if !fileutil.DirExists(dir) {
		logger.Warn("Data directory not found", "path", dir, "hint", hints.ForDataDir())
		return
	}
	if _, err := os.ReadDir(dir); err != nil {
		logger.Warn("Data directory not readable", "path", dir, "error", err, "hint", hints.ForDataDir())
	}
}
