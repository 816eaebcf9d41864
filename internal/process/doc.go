// Package process provides signal-aware contexts shared by the markd binaries.
package process
