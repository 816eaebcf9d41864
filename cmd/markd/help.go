package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: markd [flags] <input-path> <output-path>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown-like text files to standalone HTML pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input-path     File, or directory whose files are converted (subdirectories skipped)")
	fmt.Fprintln(w, "  output-path    Output file (extension forced to .html) or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --css <path>             CSS file injected into every page")
	fmt.Fprintln(w, "      --title <s>              Title for documents without a \"! \" line")
	fmt.Fprintln(w, "      --normalize-newlines     Convert CRLF line endings before conversion")
	fmt.Fprintln(w, "  -w, --watch                  Convert again when input files change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "      --print-config           Print the effective configuration and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show detailed timing")
	fmt.Fprintln(w, "      --log-format <s>         Log format: text, json")
	fmt.Fprintln(w, "      --version                Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MARKD_CONFIG, MARKD_CSS, MARKD_TITLE, MARKD_LOG_LEVEL, MARKD_LOG_FORMAT")
	fmt.Fprintln(w, "  Priority: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 conversion failed, 2 usage or config, 3 input not readable")
}
