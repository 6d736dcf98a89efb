package filestorage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
)

// pngHeader is the 8-byte PNG signature followed by filler so content
// sniffing identifies the file as an image.
var pngHeader = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 24)...)

func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("creating form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer failed: %v", err)
	}

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("parsing form failed: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	headers := form.File["file"]
	if len(headers) != 1 {
		t.Fatalf("expected one file header, got %d", len(headers))
	}
	return headers[0]
}

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	if err != nil {
		t.Fatalf("creating storage failed: %v", err)
	}
	return storage
}

func TestSaveFileAcceptsAllowedTypes(t *testing.T) {
	storage := newTestStorage(t)

	tests := []struct {
		name     string
		filename string
		content  []byte
		wantMime string
	}{
		{"png image", "photo.png", pngHeader, "image/png"},
		{"jpg extension variant", "photo.jpg", append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 28)...), "image/jpeg"},
		{"pdf document", "notes.pdf", []byte("%PDF-1.4 fake content"), "application/pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := newFileHeader(t, tt.filename, tt.content)
			info, err := storage.SaveFile(header)
			if err != nil {
				t.Fatalf("save failed: %v", err)
			}
			if info.MimeType != tt.wantMime {
				t.Fatalf("expected mime %s, got %s", tt.wantMime, info.MimeType)
			}
			if info.Filename != tt.filename {
				t.Fatalf("expected original filename %s, got %s", tt.filename, info.Filename)
			}
			if !strings.HasPrefix(info.Path, "http://localhost:8080/uploads/") {
				t.Fatalf("expected a URL path, got %s", info.Path)
			}
		})
	}
}

func TestSaveFileRejectsDisallowedTypes(t *testing.T) {
	storage := newTestStorage(t)

	tests := []struct {
		name     string
		filename string
		content  []byte
	}{
		{"executable extension", "malware.exe", []byte("MZ binary")},
		{"script extension", "script.sh", []byte("#!/bin/sh")},
		{"allowed extension wrong content", "fake.png", []byte("just plain text, not an image")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := newFileHeader(t, tt.filename, tt.content)
			if _, err := storage.SaveFile(header); !errors.Is(err, apperrors.ErrUnsupportedFileType) {
				t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
			}
		})
	}
}

func TestSaveFileGeneratesUniqueNames(t *testing.T) {
	storage := newTestStorage(t)

	first, err := storage.SaveFile(newFileHeader(t, "same.png", pngHeader))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := storage.SaveFile(newFileHeader(t, "same.png", pngHeader))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first.Path == second.Path {
		t.Fatalf("two uploads of the same name must not collide: %s", first.Path)
	}
}

func TestDeleteFileInSubdirectory(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	if err != nil {
		t.Fatalf("creating storage failed: %v", err)
	}

	info, err := storage.SaveFileWithPath(newFileHeader(t, "avatar.png", pngHeader), "profiles")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	physical := filepath.Join(dir, "profiles", filepath.Base(info.Path))
	if _, err := os.Stat(physical); err != nil {
		t.Fatalf("expected the file under the subdirectory: %v", err)
	}

	if err := storage.DeleteFile(info.Path); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(physical); !os.IsNotExist(err) {
		t.Fatalf("file in the subdirectory should be gone")
	}
}

func TestDeleteFileRejectsTraversal(t *testing.T) {
	storage := newTestStorage(t)

	if err := storage.DeleteFile("uploads/../../etc/passwd"); err == nil {
		t.Fatalf("expected traversal paths to be rejected")
	}
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "")
	if err != nil {
		t.Fatalf("creating storage failed: %v", err)
	}

	info, err := storage.SaveFile(newFileHeader(t, "gone.png", pngHeader))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := storage.DeleteFile(info.Path); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.Base(info.Path))); !os.IsNotExist(err) {
		t.Fatalf("file should be gone from disk")
	}

	// Deleting again, or deleting nothing, is a no-op
	if err := storage.DeleteFile(info.Path); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if err := storage.DeleteFile(""); err != nil {
		t.Fatalf("empty path should be a no-op: %v", err)
	}
}
