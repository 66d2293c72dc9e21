package artifact

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sort"
	"sync"
	"testing"
)

func TestLocalFS_ImplementsStore(t *testing.T) {
	var _ Store = (*LocalFS)(nil)
}

func TestNewLocalFS_EmptyPath(t *testing.T) {
	if _, err := NewLocalFS(""); err == nil {
		t.Error("expected error for empty base path")
	}
}

func TestLocalFS_WriteRead(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalFS(dir)
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}

	ctx := context.Background()
	data := []byte(`[{"name":"EURUSD"}]`)

	if err := store.Write(ctx, "data.json", data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := store.Read(ctx, "data.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if string(got) != string(data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestLocalFS_ReadMissing(t *testing.T) {
	store, _ := NewLocalFS(t.TempDir())

	_, err := store.Read(context.Background(), "reports/missing.html")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLocalFS_RejectsEscape(t *testing.T) {
	store, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	if _, err := store.Read(ctx, "../etc/passwd"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected escape error, got %v", err)
	}
	if err := store.Write(ctx, "reports/../../x", []byte("x")); err == nil {
		t.Error("expected escape error on write")
	}
}

func TestLocalFS_List(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocalFS(dir)
	ctx := context.Background()

	store.Write(ctx, "reports/SafeReport_EURUSD.html", []byte("a"))
	store.Write(ctx, "reports/TrendlineReport_GBPUSD.html", []byte("b"))
	store.Write(ctx, "data.json", []byte("[]"))

	paths, err := store.List(ctx, "reports")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	sort.Strings(paths)

	want := []string{"reports/SafeReport_EURUSD.html", "reports/TrendlineReport_GBPUSD.html"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %v", len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestLocalFS_ListMissingPrefix(t *testing.T) {
	store, _ := NewLocalFS(t.TempDir())

	paths, err := store.List(context.Background(), "reports")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no paths, got %v", paths)
	}
}

func TestLocalFS_WriteIsAtomicForReaders(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocalFS(dir)
	ctx := context.Background()

	small := []byte(`[{"name":"EURUSD"}]`)
	large := bytes.Repeat([]byte(`{"name":"GBPUSD","category":"Trend Continuation"},`), 4096)
	if err := store.Write(ctx, "data.json", small); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < 200; i++ {
			payload := small
			if i%2 == 0 {
				payload = large
			}
			if err := store.Write(ctx, "data.json", payload); err != nil {
				t.Errorf("Write: %v", err)
				return
			}
		}
	}()

	reads := 0
	for {
		select {
		case <-done:
			wg.Wait()
			if reads == 0 {
				t.Log("writer finished before any concurrent read")
			}
			entries, _ := os.ReadDir(dir)
			if len(entries) != 1 {
				t.Errorf("expected only data.json to remain, got %d entries", len(entries))
			}
			return
		default:
		}

		got, err := store.Read(ctx, "data.json")
		if err != nil {
			t.Fatalf("Read during write: %v", err)
		}
		if !bytes.Equal(got, small) && !bytes.Equal(got, large) {
			t.Fatalf("read a torn file of %d bytes", len(got))
		}
		reads++
	}
}
