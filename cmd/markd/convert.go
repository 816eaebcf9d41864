package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alnah/go-markd"
	"github.com/alnah/go-markd/internal/config"
	"github.com/alnah/go-markd/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage   = errors.New("invalid usage")
	ErrReadCSS = errors.New("failed to read CSS file")
)

// runConvert orchestrates a batch run, and a watch loop when requested.
func runConvert(ctx context.Context, positionalArgs []string, flags *batchFlags, env *Environment) error {
	if len(positionalArgs) != 2 {
		return fmt.Errorf("%w: expected <input-path> <output-path>, got %d arguments", ErrUsage, len(positionalArgs))
	}
	inputPath, outputPath := positionalArgs[0], positionalArgs[1]

	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, env)
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg, logger)
	if err != nil {
		return err
	}

	found, err := discoverFiles(inputPath, outputPath, logger)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	results := convertBatch(ctx, conv, found.files)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)

	if flags.watch {
		return runWatch(ctx, conv, inputPath, outputPath, flags, env, logger)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d conversion(s) failed", ErrConversionsFailed, failed)
	}
	return nil
}

// resolveConfig builds the effective configuration.
// Priority: flags > environment > config file > defaults.
func resolveConfig(flags *batchFlags) (*config.Config, error) {
	env := loadEnvConfig()

	cfg := config.DefaultConfig()
	if name := resolveConfigName(flags.common.config, env); name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies CLI flag values over cfg. Flags always win.
func mergeFlags(flags *batchFlags, cfg *config.Config) {
	if flags.document.css != "" {
		cfg.Document.CSSFile = flags.document.css
	}
	if flags.document.title != "" {
		cfg.Document.DefaultTitle = flags.document.title
	}
	if flags.document.normalizeNewlines {
		cfg.Document.NormalizeNewlines = true
	}
	if flags.log.format != "" {
		cfg.Log.Format = flags.log.format
	}
	switch {
	case flags.common.quiet:
		cfg.Log.Level = "error"
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	}
}

// newLogger builds the stderr logger for the run.
func newLogger(cfg *config.Config, env *Environment) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: env.Stderr,
	})
}

// newConverter builds the converter from the effective configuration.
func newConverter(cfg *config.Config, logger *slog.Logger) (*markd.Converter, error) {
	css, err := resolveCSSContent(cfg.Document.CSSFile)
	if err != nil {
		return nil, err
	}

	return markd.NewConverter(
		markd.WithLogger(logger),
		markd.WithDefaultTitle(cfg.Document.DefaultTitle),
		markd.WithCSS(css),
		markd.WithNormalizeLineEndings(cfg.Document.NormalizeNewlines),
	), nil
}

// resolveCSSContent reads the stylesheet, if one is configured.
func resolveCSSContent(cssFile string) (string, error) {
	if cssFile == "" {
		return "", nil
	}
	content, err := os.ReadFile(cssFile) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}
