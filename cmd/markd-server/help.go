package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: markd-server [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the documents of a directory as HTML pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  /          Links to every document in the data directory")
	fmt.Fprintln(w, "  /<name>    The document <name>.md converted to HTML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>      Config file name or path")
	fmt.Fprintln(w, "      --addr <addr>        Listen address, host:port or bare port (default 0.0.0.0:8080)")
	fmt.Fprintln(w, "      --data-dir <dir>     Directory holding the documents (default data)")
	fmt.Fprintln(w, "      --log-level <s>      Log level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>     Log format: text, json")
	fmt.Fprintln(w, "      --version            Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  LISTEN_PORT, DATA_DIR")
	fmt.Fprintln(w, "  Priority: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 stopped cleanly, 1 server error, 2 usage or config, 3 cannot listen")
}
