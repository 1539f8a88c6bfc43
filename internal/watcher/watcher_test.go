package watcher_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikbrunner/folio/internal/watcher"
)

type countingInvalidator struct {
	clears atomic.Int32
}

func (c *countingInvalidator) Clear() { c.clears.Add(1) }

func startWatcher(t *testing.T, root string, target watcher.Invalidator, onChange func([]string)) {
	t.Helper()
	w, err := watcher.New(root, target, watcher.Options{
		DebounceWindow: 50 * time.Millisecond,
		OnChange:       onChange,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestWatcher_ClearsOnChange(t *testing.T) {
	root := t.TempDir()
	target := &countingInvalidator{}

	changed := make(chan []string, 4)
	startWatcher(t, root, target, func(paths []string) { changed <- paths })

	// A burst of writes is debounced into one clear
	path := filepath.Join(root, "projects.yaml")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("items: []\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case paths := <-changed:
		if len(paths) != 1 || paths[0] != "projects.yaml" {
			t.Errorf("unexpected changed paths %v", paths)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	if got := target.clears.Load(); got != 1 {
		t.Errorf("expected 1 clear, got %d", got)
	}
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	target := &countingInvalidator{}

	var mu sync.Mutex
	var seen []string
	changed := make(chan struct{}, 8)
	startWatcher(t, root, target, func(paths []string) {
		mu.Lock()
		seen = append(seen, paths...)
		mu.Unlock()
		changed <- struct{}{}
	})

	blogDir := filepath.Join(root, "blog")
	if err := os.Mkdir(blogDir, 0755); err != nil {
		t.Fatal(err)
	}
	waitForChange(t, changed)

	if err := os.WriteFile(filepath.Join(blogDir, "post.md"), []byte("# hi\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		mu.Lock()
		found := false
		for _, p := range seen {
			if p == "blog/post.md" {
				found = true
			}
		}
		mu.Unlock()
		if found {
			return
		}
		select {
		case <-changed:
		case <-deadline:
			t.Fatalf("expected blog/post.md change, saw %v", seen)
		}
	}
}

func TestWatcher_IgnoresHiddenFiles(t *testing.T) {
	root := t.TempDir()
	target := &countingInvalidator{}
	startWatcher(t, root, target, nil)

	if err := os.WriteFile(filepath.Join(root, ".projects.yaml.swp"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if got := target.clears.Load(); got != 0 {
		t.Errorf("expected hidden files to be ignored, got %d clears", got)
	}
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := watcher.New(filepath.Join(t.TempDir(), "missing"), &countingInvalidator{}, watcher.Options{})
	if err == nil {
		t.Error("expected error for missing root")
	}
}

func waitForChange(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}
