package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsLevelWrites(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "extra")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(sub, "a.yaml")
	if err := os.WriteFile(want, []byte("id: a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-w.Events:
			if got != want {
				t.Fatalf("event for %q, want %q", got, want)
			}
			return
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-timeout:
			t.Fatal("no event for level write")
		}
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	sub := filepath.Join(dir, "world-2", "castle")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(sub, "2-1.yaml")
	if err := os.WriteFile(want, []byte("id: 2-1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-w.Events:
			if got == want {
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-timeout:
			t.Fatal("no event for a level written into a new directory")
		}
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events should be closed")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
