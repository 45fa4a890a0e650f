package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		op       fsnotify.Op
		expected Operation
	}{
		{
			name:     "Remove returns OpDelete",
			op:       fsnotify.Remove,
			expected: OpDelete,
		},
		{
			name:     "Rename returns OpDelete",
			op:       fsnotify.Rename,
			expected: OpDelete,
		},
		{
			name:     "Create returns OpCreate",
			op:       fsnotify.Create,
			expected: OpCreate,
		},
		{
			name:     "Write returns OpModify",
			op:       fsnotify.Write,
			expected: OpModify,
		},
		{
			name:     "Chmod returns OpModify",
			op:       fsnotify.Chmod,
			expected: OpModify,
		},
		{
			name:     "Remove takes precedence over Write",
			op:       fsnotify.Remove | fsnotify.Write,
			expected: OpDelete,
		},
		{
			name:     "Rename takes precedence over Create",
			op:       fsnotify.Rename | fsnotify.Create,
			expected: OpDelete,
		},
		{
			name:     "Create takes precedence over Write",
			op:       fsnotify.Create | fsnotify.Write,
			expected: OpCreate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classify(tt.op)
			if result != tt.expected {
				t.Errorf("classify(%v) = %v, want %v", tt.op, result, tt.expected)
			}
		})
	}
}

func TestMergeOps(t *testing.T) {
	tests := []struct {
		name     string
		old      Operation
		next     Operation
		expected Operation
	}{
		{"delete then create is create", OpDelete, OpCreate, OpCreate},
		{"modify then delete is delete", OpModify, OpDelete, OpDelete},
		{"create then modify keeps create", OpCreate, OpModify, OpCreate},
		{"modify then modify stays modify", OpModify, OpModify, OpModify},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mergeOps(tt.old, tt.next); got != tt.expected {
				t.Errorf("mergeOps(%v, %v) = %v, want %v", tt.old, tt.next, got, tt.expected)
			}
		})
	}
}

func TestOperationString(t *testing.T) {
	tests := []struct {
		op       Operation
		expected string
	}{
		{OpCreate, "create"},
		{OpModify, "modify"},
		{OpDelete, "delete"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.op.String(); got != tt.expected {
				t.Errorf("Operation.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsBoundaryFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"region.geojson", true},
		{"region.GeoJSON", true},
		{"region.json", true},
		{"/path/to/region.geojson", true},
		{"region.txt", false},
		{"region.geojson.bak", false},
		{"geojson", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isBoundaryFile(tt.path); got != tt.expected {
				t.Errorf("isBoundaryFile(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestWatcherCoalescesWrites(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var events []Event
	handler := func(_ context.Context, e Event) error {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
		return nil
	}

	w, err := New(Config{Paths: []string{dir}, Debounce: 50 * time.Millisecond}, handler, testLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	target := filepath.Join(dir, "region.geojson")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte(`{"type":"FeatureCollection","features":[]}`), 0600); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Non-boundary files never reach the handler.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(events)
		mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	// Settle any stragglers before asserting the count.
	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("handler calls = %d, want 1", len(events))
	}
	if events[0].Path != target {
		t.Errorf("Path = %q, want %q", events[0].Path, target)
	}
	if events[0].Operation == OpDelete {
		t.Errorf("Operation = %v, want create or modify", events[0].Operation)
	}
}
