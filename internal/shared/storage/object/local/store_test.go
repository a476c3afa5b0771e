package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"resume-builder/internal/shared/storage/object"
)

func TestPutAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	key := object.ExportKey("google:1", "export-1", "pdf")

	n, err := store.Put(ctx, key, "application/pdf", strings.NewReader("%PDF-1.4 test"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != int64(len("%PDF-1.4 test")) {
		t.Fatalf("size = %d", n)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "%PDF-1.4 test" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../escape.pdf", "/etc/passwd", ""} {
		if _, err := store.Put(context.Background(), key, "", strings.NewReader("x")); err == nil {
			t.Fatalf("Put(%q) expected error", key)
		}
		if _, err := store.Open(context.Background(), key); err == nil {
			t.Fatalf("Open(%q) expected error", key)
		}
	}
}

func TestDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	key := object.ExportKey("google:1", "export-2", "pdf")

	if _, err := store.Put(ctx, key, "application/pdf", strings.NewReader("%PDF")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, key); err == nil {
		t.Fatalf("expected Open to fail after Delete")
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("deleting a missing key should succeed, got %v", err)
	}
	if err := store.Delete(ctx, "../escape.pdf"); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
}
