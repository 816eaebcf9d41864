package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-markd/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MARKD_CONFIG: config file name or path
	CSS        string // MARKD_CSS: stylesheet path
	Title      string // MARKD_TITLE: default page title
	LogLevel   string // MARKD_LOG_LEVEL: debug, info, warn, error
	LogFormat  string // MARKD_LOG_FORMAT: text, json
}

// knownEnvVars lists valid MARKD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MARKD_CONFIG":     true,
	"MARKD_CSS":        true,
	"MARKD_TITLE":      true,
	"MARKD_LOG_LEVEL":  true,
	"MARKD_LOG_FORMAT": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("MARKD_CONFIG"),
		CSS:        os.Getenv("MARKD_CSS"),
		Title:      os.Getenv("MARKD_TITLE"),
		LogLevel:   os.Getenv("MARKD_LOG_LEVEL"),
		LogFormat:  os.Getenv("MARKD_LOG_FORMAT"),
	}
}

// warnUnknownEnvVars writes warnings for unrecognized MARKD_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MARKD_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment values on cfg.
// Environment beats the config file; flags are applied afterwards by mergeFlags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.CSS != "" {
		cfg.Document.CSSFile = env.CSS
	}
	if env.Title != "" {
		cfg.Document.DefaultTitle = env.Title
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}

// resolveConfigName picks the config to load: flag first, then MARKD_CONFIG.
func resolveConfigName(flagValue string, env *envConfig) string {
	if flagValue != "" {
		return flagValue
	}
	return env.ConfigPath
}
