package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-markd/internal/hints"
	"github.com/alnah/go-markd/internal/pipeline"
	"github.com/alnah/go-markd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength = 200
	MaxPathLength  = 4096
	MaxAddrLength  = 255
)

// Defaults applied when neither file, environment nor flags set a value.
const (
	DefaultListenAddr = "0.0.0.0:8080"
	DefaultDataDir    = "data"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// appDirName is the directory under the user config dir searched by LoadConfig.
const appDirName = "markd"

// Config holds configuration shared by the batch tool and the server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Document DocumentConfig `yaml:"document"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig defines the HTTP endpoint.
type ServerConfig struct {
	Addr    string `yaml:"addr"`    // host:port or bare port
	DataDir string `yaml:"dataDir"` // directory holding .md documents
}

// DocumentConfig defines conversion options.
type DocumentConfig struct {
	DefaultTitle      string `yaml:"defaultTitle"`      // used when no "! " title line exists
	CSSFile           string `yaml:"cssFile"`           // stylesheet injected into <head> (empty = none)
	NormalizeNewlines bool   `yaml:"normalizeNewlines"` // convert CRLF/CR to LF before conversion
}

// LogConfig defines logger construction.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the configuration used when no file is loaded.
func DefaultConfig() *Config {
	return &Config{
		Server:   ServerConfig{Addr: DefaultListenAddr, DataDir: DefaultDataDir},
		Document: DocumentConfig{DefaultTitle: pipeline.DefaultTitle},
		Log:      LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Validate checks field lengths and enumerated values.
// Empty fields are valid and mean "use the default".
func (c *Config) Validate() error {
	if err := validateFieldLength("document.defaultTitle", c.Document.DefaultTitle, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.cssFile", c.Document.CSSFile, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.dataDir", c.Server.DataDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Server.Addr != "" {
		if _, err := NormalizeListenAddr(c.Server.Addr); err != nil {
			return fmt.Errorf("server.addr: %w", err)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// NormalizeListenAddr turns a bare port ("9000") into "0.0.0.0:9000" and
// checks that anything else is a host:port pair.
func NormalizeListenAddr(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", fmt.Errorf("%w: empty listen address", ErrInvalidValue)
	}
	if port, err := strconv.Atoi(addr); err == nil {
		if port < 0 || port > 65535 {
			return "", fmt.Errorf("%w: port %d out of range", ErrInvalidValue, port)
		}
		return net.JoinHostPort("0.0.0.0", addr), nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", fmt.Errorf("%w: listen address %q: %v", ErrInvalidValue, addr, err)
	}
	return addr, nil
}

// Merge overlays the non-empty fields of other onto c.
// Booleans are only ever switched on by an overlay.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.DataDir != "" {
		c.Server.DataDir = other.Server.DataDir
	}
	if other.Document.DefaultTitle != "" {
		c.Document.DefaultTitle = other.Document.DefaultTitle
	}
	if other.Document.CSSFile != "" {
		c.Document.CSSFile = other.Document.CSSFile
	}
	if other.Document.NormalizeNewlines {
		c.Document.NormalizeNewlines = true
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}

// Encode renders the configuration as YAML.
func (c *Config) Encode() ([]byte, error) {
	return yamlutil.Encode(c)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// The loaded values are overlaid on DefaultConfig.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var loaded Config
	if err := yamlutil.ReadFileStrict(configPath, &loaded); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := loaded.Validate(); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.Merge(&loaded)
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/markd/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound, strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
