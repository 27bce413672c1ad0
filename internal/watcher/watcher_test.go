package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/almanac/internal/watcher"
)

func newPackDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "items"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pack.yaml"), []byte("id: test\n"), 0o644))
	return dir
}

func startWatcher(t *testing.T, dirs ...string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{
		Dirs:        dirs,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func expectNotification(t *testing.T, onChange <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal(msg)
	}
}

func expectSilence(t *testing.T, onChange <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-onChange:
		t.Fatal(msg)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := newPackDir(t)
	file := filepath.Join(dir, "items", "wood.yaml")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o644))

	onChange := startWatcher(t, dir)

	// Rapid writes should coalesce into single notification
	for i := 0; i < 10; i++ {
		err := os.WriteFile(file, []byte(fmt.Sprintf("- id: test:item%d\n", i)), 0o644)
		require.NoError(t, err, "failed to write file")
		time.Sleep(10 * time.Millisecond)
	}

	expectNotification(t, onChange, "expected notification but got timeout")
	expectSilence(t, onChange, "unexpected second notification")
}

func TestWatcher_IgnoresNonYAMLFiles(t *testing.T) {
	dir := newPackDir(t)
	other := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0o644))

	onChange := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0o644))

	expectSilence(t, onChange, "should not notify for non-yaml files")
}

func TestWatcher_WatchesSubdirectories(t *testing.T) {
	dir := newPackDir(t)
	onChange := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "items", "metals.yml"), []byte("[]"), 0o644))

	expectNotification(t, onChange, "expected notification for a file in a subdirectory")
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	dir := newPackDir(t)
	onChange := startWatcher(t, dir)

	sub := filepath.Join(dir, "recipes", "crafting")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	// The new directory itself is not a yaml change; give the watcher time to add it.
	expectSilence(t, onChange, "directory creation should not notify")

	require.NoError(t, os.WriteFile(filepath.Join(sub, "tools.yaml"), []byte("[]"), 0o644))
	expectNotification(t, onChange, "expected notification for a file in a new directory")
}

func TestWatcher_NotifiesOnRemove(t *testing.T) {
	dir := newPackDir(t)
	file := filepath.Join(dir, "items", "wood.yaml")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o644))

	onChange := startWatcher(t, dir)

	require.NoError(t, os.Remove(file))
	expectNotification(t, onChange, "expected notification for removed file")
}

func TestWatcher_MultipleDirs(t *testing.T) {
	a, b := newPackDir(t), newPackDir(t)
	onChange := startWatcher(t, a, b)

	require.NoError(t, os.WriteFile(filepath.Join(b, "pack.yaml"), []byte("id: other\n"), 0o644))
	expectNotification(t, onChange, "expected notification for the second pack")
}

func TestWatcher_Stop(t *testing.T) {
	dir := newPackDir(t)

	w, err := watcher.New(watcher.DefaultConfig(dir))
	require.NoError(t, err, "failed to create watcher")

	_, err = w.Start()
	require.NoError(t, err, "failed to start watcher")

	// Stop should not hang or panic
	done := make(chan struct{})
	go func() {
		err := w.Stop()
		assert.NoError(t, err, "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}

func TestNew_RequiresDirs(t *testing.T) {
	_, err := watcher.New(watcher.Config{DebounceDur: time.Second})
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/packs/a", "/packs/b")

	assert.Equal(t, []string{"/packs/a", "/packs/b"}, cfg.Dirs)
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceDur)
}
