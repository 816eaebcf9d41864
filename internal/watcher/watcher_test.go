package watcher

// Notes:
// - Debouncer tests drive the timer directly and never sleep longer than the
//   configured delay plus a generous margin.
// - TestWatcher_Run touches the real filesystem through fsnotify and waits up
//   to two seconds for a batch; it is the only timing-sensitive test.

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		op       Op
		expected string
		gone     bool
	}{
		{OpCreated, "created", false},
		{OpModified, "modified", false},
		{OpRemoved, "removed", true},
		{OpRenamed, "renamed", true},
		{Op(99), "unknown", false},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, tc.op.String())
			assert.Equal(t, tc.gone, tc.op.Gone())
		})
	}
}

func TestDebouncer_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(10 * time.Millisecond)
	assert.Nil(t, d.Ready(), "idle debouncer must not be ready")

	d.Add(Event{Path: "b.md", Op: OpCreated})
	d.Add(Event{Path: "a.md", Op: OpModified})
	d.Add(Event{Path: "b.md", Op: OpModified})
	assert.Equal(t, 2, d.Pending())

	select {
	case <-d.Ready():
	case <-time.After(time.Second):
		t.Fatal("debouncer never became ready")
	}

	batch := d.Drain()
	assert.Equal(t, []Event{
		{Path: "a.md", Op: OpModified},
		{Path: "b.md", Op: OpModified},
	}, batch)
	assert.Zero(t, d.Pending())
	assert.Nil(t, d.Ready())
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(0)
	assert.Equal(t, DefaultDelay, d.delay)

	d.Add(Event{Path: "x"})
	d.Stop()
	assert.Nil(t, d.Ready())
	assert.Equal(t, 1, d.Pending(), "Stop keeps pending events")
}

func TestFilters(t *testing.T) {
	t.Parallel()

	dir := filepath.Join("in", "docs")

	assert.True(t, NotHidden(filepath.Join(dir, "a.md")))
	assert.False(t, NotHidden(filepath.Join(dir, ".a.md")))

	inDir := InDir(dir)
	assert.True(t, inDir(filepath.Join(dir, "a.md")))
	assert.False(t, inDir(filepath.Join(dir, "sub", "a.md")))
	assert.False(t, inDir(filepath.Join("in", "a.md")))

	exact := Exactly(filepath.Join(dir, "a.md"))
	assert.True(t, exact(filepath.Join(dir, ".", "a.md")))
	assert.False(t, exact(filepath.Join(dir, "b.md")))
}

func TestWatcher_Translate(t *testing.T) {
	t.Parallel()

	w, err := New(time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	w.AddFilter(NotHidden)

	testCases := []struct {
		name   string
		event  fsnotify.Event
		want   Event
		wantOK bool
	}{
		{"create", fsnotify.Event{Name: "a.md", Op: fsnotify.Create}, Event{Path: "a.md", Op: OpCreated}, true},
		{"write", fsnotify.Event{Name: "a.md", Op: fsnotify.Write}, Event{Path: "a.md", Op: OpModified}, true},
		{"remove", fsnotify.Event{Name: "a.md", Op: fsnotify.Remove}, Event{Path: "a.md", Op: OpRemoved}, true},
		{"rename", fsnotify.Event{Name: "a.md", Op: fsnotify.Rename}, Event{Path: "a.md", Op: OpRenamed}, true},
		{"chmod ignored", fsnotify.Event{Name: "a.md", Op: fsnotify.Chmod}, Event{}, false},
		{"hidden filtered", fsnotify.Event{Name: ".a.md", Op: fsnotify.Write}, Event{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := w.translate(tc.event)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWatcher_RunNilHandler(t *testing.T) {
	t.Parallel()

	w, err := New(time.Millisecond)
	require.NoError(t, err)

	assert.ErrorIs(t, w.Run(context.Background(), nil), ErrNoHandler)
}

func TestWatcher_AddMissingDir(t *testing.T) {
	t.Parallel()

	w, err := New(time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "missing")))
}

func TestWatcher_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Add(dir))
	w.AddFilter(NotHidden)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []Event, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, events []Event) {
			batches <- events
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ignored"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# a"), 0o600))

	select {
	case batch := <-batches:
		require.NotEmpty(t, batch)
		for _, e := range batch {
			assert.Equal(t, filepath.Join(dir, "a.md"), e.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no batch delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
