package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// serverFlags holds flags for the HTTP server.
type serverFlags struct {
	config    string
	addr      string
	dataDir   string
	logLevel  string
	logFormat string
	version   bool
}

// parseFlags parses server flags and returns the positional args.
func parseFlags(args []string) (*serverFlags, []string, error) {
	fs := flag.NewFlagSet("markd-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &serverFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.addr, "addr", "", "listen address, host:port or bare port")
	fs.StringVar(&f.dataDir, "data-dir", "", "directory holding the documents")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	fs.BoolVar(&f.version, "version", false, "show version information")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
