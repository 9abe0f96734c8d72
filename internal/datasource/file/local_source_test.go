package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalOpenReads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.csv")
	if err := os.WriteFile(path, []byte("ProductID\n1\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	src := NewLocal(path)
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "ProductID\n1\n" {
		t.Fatalf("unexpected contents: %q", b)
	}
}

func TestLocalOpenMissing(t *testing.T) {
	src := NewLocal(filepath.Join(t.TempDir(), "nope.csv"))
	_, err := src.Open(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error should unwrap to os.ErrNotExist, got %v", err)
	}
}

func TestLocalOpenCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal("irrelevant").Open(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
