package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared with other commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds conversion flags.
type documentFlags struct {
	css               string
	title             string
	normalizeNewlines bool
}

// logFlags holds logger flags.
type logFlags struct {
	format string
}

// batchFlags holds all flags for a batch run.
type batchFlags struct {
	common      commonFlags
	document    documentFlags
	log         logFlags
	watch       bool
	printConfig bool
	version     bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds conversion flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.css, "css", "", "CSS file injected into every page")
	fs.StringVar(&f.title, "title", "", "title for documents without a \"! \" line")
	fs.BoolVar(&f.normalizeNewlines, "normalize-newlines", false, "convert CRLF line endings before conversion")
}

// addLogFlags adds logger flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.format, "log-format", "", "log format: text, json")
}

// parseFlags parses batch flags and returns the positional args.
func parseFlags(args []string) (*batchFlags, []string, error) {
	fs := flag.NewFlagSet("markd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &batchFlags{}

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addLogFlags(fs, &f.log)
	fs.BoolVarP(&f.watch, "watch", "w", false, "keep running and convert files again when they change")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
