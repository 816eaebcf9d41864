package main

import (
	"github.com/alnah/go-markd/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ListenPort string // LISTEN_PORT: host:port or bare port
	DataDir    string // DATA_DIR: directory holding the documents
}

// loadEnvConfig reads the server variables through getenv.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ListenPort: getenv("LISTEN_PORT"),
		DataDir:    getenv("DATA_DIR"),
	}
}

// applyEnvConfig overlays set environment values on cfg.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ListenPort != "" {
		cfg.Server.Addr = env.ListenPort
	}
	if env.DataDir != "" {
		cfg.Server.DataDir = env.DataDir
	}
}

// mergeFlags applies CLI flag values over cfg. Flags always win.
func mergeFlags(flags *serverFlags, cfg *config.Config) {
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.dataDir != "" {
		cfg.Server.DataDir = flags.dataDir
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
}

// resolveConfig builds the effective configuration.
// Priority: flags > environment > config file > defaults.
func resolveConfig(flags *serverFlags, getenv func(string) string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(loadEnvConfig(getenv), cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = config.DefaultListenAddr
	}
	if cfg.Server.DataDir == "" {
		cfg.Server.DataDir = config.DefaultDataDir
	}
	return cfg, nil
}
