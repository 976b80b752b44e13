package persistence

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// minimal PNG signature followed by an IHDR chunk header, enough for content sniffing
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func setupTestBlobStore(t *testing.T) (*FileBlobStore, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := NewFileBlobStore(root, "/uploads")
	if err != nil {
		t.Fatalf("Failed to create blob store: %v", err)
	}
	return store, root
}

func TestFileBlobStore_StoreBytes(t *testing.T) {
	store, root := setupTestBlobStore(t)
	ctx := context.Background()

	ref, err := store.StoreBytes(ctx, []byte("ABC"), "image/gif", 0)
	if err != nil {
		t.Fatalf("StoreBytes() error = %v", err)
	}

	if !strings.HasPrefix(ref, "/uploads/image-") {
		t.Errorf("ref = %q, want /uploads/image-* prefix", ref)
	}
	if filepath.Ext(ref) != ".gif" {
		t.Errorf("extension = %q, want %q", filepath.Ext(ref), ".gif")
	}

	localPath, ok := store.Path(ref)
	if !ok {
		t.Fatalf("Path(%q) not resolved", ref)
	}
	if filepath.Dir(localPath) != root {
		t.Errorf("blob stored in %q, want %q", filepath.Dir(localPath), root)
	}

	content, err := os.ReadFile(localPath)
	if err != nil {
		t.Fatalf("Failed to read blob: %v", err)
	}
	if string(content) != "ABC" {
		t.Errorf("content = %q, want %q", content, "ABC")
	}
}

func TestFileBlobStore_StoreBytes_UniqueNames(t *testing.T) {
	store, _ := setupTestBlobStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref, err := store.StoreBytes(ctx, []byte{byte(i)}, "image/png", 0)
		if err != nil {
			t.Fatalf("StoreBytes() error = %v", err)
		}
		if seen[ref] {
			t.Fatalf("duplicate blob reference %q", ref)
		}
		seen[ref] = true
	}
}

func TestFileBlobStore_StoreBytes_PreferredID(t *testing.T) {
	store, _ := setupTestBlobStore(t)
	ctx := context.Background()

	first, err := store.StoreBytes(ctx, []byte("first"), "image/webp", 1700000000000)
	if err != nil {
		t.Fatalf("StoreBytes() error = %v", err)
	}
	if first != "/uploads/image-1700000000000.webp" {
		t.Errorf("ref = %q, want %q", first, "/uploads/image-1700000000000.webp")
	}

	second, err := store.StoreBytes(ctx, []byte("second"), "image/webp", 1700000000000)
	if err != nil {
		t.Fatalf("StoreBytes() error = %v", err)
	}
	if second != first {
		t.Errorf("re-store ref = %q, want %q", second, first)
	}

	localPath, _ := store.Path(second)
	content, err := os.ReadFile(localPath)
	if err != nil {
		t.Fatalf("Failed to read blob: %v", err)
	}
	if string(content) != "second" {
		t.Errorf("content = %q, want %q", content, "second")
	}
}

func TestFileBlobStore_StoreUpload(t *testing.T) {
	tests := []struct {
		name        string
		content     []byte
		contentType string
		wantExt     string
	}{
		{
			name:        "Declared content type",
			content:     []byte("gif-bytes"),
			contentType: "image/gif",
			wantExt:     ".gif",
		},
		{
			name:        "Sniffed PNG",
			content:     pngHeader,
			contentType: "application/octet-stream",
			wantExt:     ".png",
		},
		{
			name:        "Unknown content falls back to jpg",
			content:     []byte("plain text"),
			contentType: "",
			wantExt:     ".jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := setupTestBlobStore(t)

			ref, err := store.StoreUpload(context.Background(), strings.NewReader(string(tt.content)), tt.contentType)
			if err != nil {
				t.Fatalf("StoreUpload() error = %v", err)
			}

			if filepath.Ext(ref) != tt.wantExt {
				t.Errorf("extension = %q, want %q", filepath.Ext(ref), tt.wantExt)
			}

			localPath, _ := store.Path(ref)
			content, err := os.ReadFile(localPath)
			if err != nil {
				t.Fatalf("Failed to read blob: %v", err)
			}
			if string(content) != string(tt.content) {
				t.Errorf("content = %q, want %q", content, tt.content)
			}
		})
	}
}

func TestFileBlobStore_Remove(t *testing.T) {
	store, _ := setupTestBlobStore(t)
	ctx := context.Background()

	ref, err := store.StoreBytes(ctx, []byte("ABC"), "image/png", 0)
	if err != nil {
		t.Fatalf("StoreBytes() error = %v", err)
	}

	if err := store.Remove(ctx, ref); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	localPath, _ := store.Path(ref)
	if _, err := os.Stat(localPath); !os.IsNotExist(err) {
		t.Errorf("expected blob to be removed, stat error = %v", err)
	}

	// removing again is a no-op
	if err := store.Remove(ctx, ref); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
}

func TestFileBlobStore_Path(t *testing.T) {
	store, root := setupTestBlobStore(t)

	tests := []struct {
		name   string
		ref    string
		want   string
		wantOK bool
	}{
		{
			name:   "Managed blob",
			ref:    "/uploads/image-1.png",
			want:   filepath.Join(root, "image-1.png"),
			wantOK: true,
		},
		{
			name: "Foreign prefix",
			ref:  "/static/image-1.png",
		},
		{
			name: "Data URL",
			ref:  "data:image/png;base64,QUJD",
		},
		{
			name: "Traversal",
			ref:  "/uploads/../galleryData.json",
		},
		{
			name: "Bare prefix",
			ref:  "/uploads/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := store.Path(tt.ref)
			if ok != tt.wantOK {
				t.Fatalf("Path(%q) ok = %v, want %v", tt.ref, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Path(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestNewFileBlobStore_EmptyRoot(t *testing.T) {
	if _, err := NewFileBlobStore("", "/uploads"); err == nil {
		t.Error("Expected error for empty blob directory, got nil")
	}
}

func TestShortID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		id := shortID()
		if len(id) != 8 {
			t.Fatalf("shortID() = %q, want 8 characters", id)
		}
		if strings.Trim(id, "0123456789abcdef") != "" {
			t.Errorf("shortID() = %q, want lowercase hex", id)
		}
		seen[id] = struct{}{}
	}

	if len(seen) < 2 {
		t.Errorf("shortID() returned the same value every time")
	}
}
