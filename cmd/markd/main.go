package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-markd/internal/process"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain runs the CLI and returns the exit code.
func runMain(args []string, env *Environment) int {
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
		fmt.Fprintf(env.Stdout, "markd %s\n", Version)
		return ExitSuccess
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	warnUnknownEnvVars(env.Stderr)

	if flags.printConfig {
		return runPrintConfig(flags, env)
	}

	if len(positional) < 2 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	ctx, stop := process.NotifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runPrintConfig writes the effective configuration as YAML.
func runPrintConfig(flags *batchFlags, env *Environment) int {
	cfg, err := resolveConfig(flags)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	data, err := cfg.Encode()
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitGeneral
	}
	_, _ = env.Stdout.Write(data)
	return ExitSuccess
}
