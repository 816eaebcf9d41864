package main

// Notes:
// - runMain: we test exit codes and the files written for the main scenarios.
//   Environment variables are left untouched so these tests can run in parallel.
// - Watch mode is covered in watch_test.go through its plan; the fsnotify loop
//   itself is covered by internal/watcher.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const wantHiPage = "<!DOCTYPE html><html><head><title>Markdown Page</title></head><body><h1>Hi</h1></body></html>"

func TestVersion(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv()
	if code := runMain([]string{"markd", "--version"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if got := stdout.String(); got != "markd "+Version+"\n" {
		t.Errorf("version output = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Usage paths
// ---------------------------------------------------------------------------

func TestRunMain_Usage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no arguments", []string{"markd"}, ExitSuccess, "Usage: markd", ""},
		{"one argument", []string{"markd", "in.md"}, ExitSuccess, "Usage: markd", ""},
		{"help", []string{"markd", "--help"}, ExitSuccess, "Usage: markd", ""},
		{"unknown flag", []string{"markd", "--bogus"}, ExitUsage, "", "unknown flag"},
		{"too many arguments", []string{"markd", "a", "b", "c"}, ExitUsage, "", "invalid usage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Conversions
// ---------------------------------------------------------------------------

func TestRunMain_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.md")
	writeFile(t, in, "# Hi")

	env, stdout, stderr := newTestEnv()
	code := runMain([]string{"markd", in, filepath.Join(dir, "page.txt")}, env)

	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, stderr.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "page.html"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != wantHiPage {
		t.Errorf("output = %q, want %q", data, wantHiPage)
	}
	if !strings.Contains(stdout.String(), "Done! 1 succeeded, 0 failed, 0 skipped") {
		t.Errorf("stdout = %q, want summary", stdout.String())
	}
}

func TestRunMain_Directory(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "site")
	writeFile(t, filepath.Join(in, "a.md"), "# Hi")
	writeFile(t, filepath.Join(in, ".b.md"), "# Hidden")

	env, stdout, stderr := newTestEnv()
	code := runMain([]string{"markd", "--title", "Ignored", in, out}, env)

	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(out, "a.html")); err != nil {
		t.Errorf("a.html not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, ".b.html")); !os.IsNotExist(err) {
		t.Errorf(".b.html should not exist, stat error = %v", err)
	}
	if !strings.Contains(stdout.String(), "1 skipped") {
		t.Errorf("stdout = %q, want the hidden file counted as skipped", stdout.String())
	}
}

func TestRunMain_CSSAndTitle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.md")
	css := filepath.Join(dir, "style.css")
	writeFile(t, in, "text")
	writeFile(t, css, "body{margin:0}")

	env, _, stderr := newTestEnv()
	code := runMain([]string{"markd", "-q", "--css", css, "--title", "Notes", in, filepath.Join(dir, "out")}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.html"))
	if err != nil {
		t.Fatal(err)
	}
	want := "<!DOCTYPE html><html><head><title>Notes</title><style>body{margin:0}</style></head><body>text</body></html>"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestRunMain_ExitCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.md")
	writeFile(t, good, "# Hi")

	badDir := t.TempDir()
	writeFile(t, filepath.Join(badDir, "ok.md"), "fine")
	if err := os.WriteFile(filepath.Join(badDir, "bad.md"), []byte{0x61, 0xff, 0x80}, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing input", []string{"markd", filepath.Join(dir, "absent.md"), filepath.Join(dir, "x")}, ExitIO},
		{"missing css", []string{"markd", "--css", filepath.Join(dir, "absent.css"), good, filepath.Join(dir, "x")}, ExitIO},
		{"missing config", []string{"markd", "-c", filepath.Join(dir, "absent.yaml"), good, filepath.Join(dir, "x")}, ExitUsage},
		{"bad log format", []string{"markd", "--log-format", "xml", good, filepath.Join(dir, "x")}, ExitUsage},
		{"per-file failure", []string{"markd", badDir, filepath.Join(dir, "site")}, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := newTestEnv()
			if code := runMain(tt.args, env); code != tt.want {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.want, stderr.String())
			}
		})
	}
}

func TestRunMain_PrintConfig(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := newTestEnv()
	code := runMain([]string{"markd", "--print-config", "--title", "Flagged"}, env)

	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, stderr.String())
	}
	for _, want := range []string{"server:", "defaultTitle: Flagged", "level: info"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("config output should contain %q, got:\n%s", want, stdout.String())
		}
	}
}
