package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"drumcharter/internal/logger"
)

func TestWatcherDispatchesAudioFiles(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		return nil
	}

	w, err := New(dir, handler, logger.New("error"), 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	if err := os.WriteFile(filepath.Join(dir, "mysong.mp3"), []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := len(handled)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("handler never called for audio file")
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "mysong.mp3" {
		t.Errorf("handled = %v, want [mysong.mp3]", handled)
	}
}

func TestNewBadDirectory(t *testing.T) {
	handler := func(ctx context.Context, path string) error { return nil }

	if _, err := New("/nonexistent/path", handler, logger.New("error"), 2); err == nil {
		t.Error("New() should fail for a missing directory")
	}
}
