package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildFileHeader assembles a real multipart.FileHeader the way gin would
// hand it to a handler.
func buildFileHeader(t *testing.T, fieldName, fileName, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	return req.MultipartForm.File[fieldName][0]
}

func TestSaveFileWithPath(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	header := buildFileHeader(t, "photo", "pas foto budi.JPG", "fake image bytes")
	url, err := ls.SaveFileWithPath(header, "spmb/photos")
	if err != nil {
		t.Fatalf("SaveFileWithPath: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/spmb/photos/") {
		t.Errorf("url = %q, want /uploads/spmb/photos/ prefix", url)
	}
	if !strings.HasSuffix(url, "_pas_foto_budi.jpg") {
		t.Errorf("url = %q, want sanitized lowercased original name as suffix", url)
	}

	// The file must exist on disk under basePath
	rel := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSaveFileNilHeader(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	url, err := ls.SaveFileWithPath(nil, "spmb/photos")
	if err != nil || url != "" {
		t.Errorf("nil header: url=%q err=%v, want empty and nil", url, err)
	}
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	header := buildFileHeader(t, "doc", "akta.pdf", "pdf bytes")
	url, err := ls.SaveFileWithPath(header, "spmb/documents")
	if err != nil {
		t.Fatalf("SaveFileWithPath: %v", err)
	}

	if err := ls.DeleteFile(url); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	// Idempotent: deleting again is fine
	if err := ls.DeleteFile(url); err != nil {
		t.Errorf("second DeleteFile: %v", err)
	}
	// Traversal attempts are rejected
	if err := ls.DeleteFile("/uploads/../../etc/passwd"); err == nil {
		t.Error("expected traversal URL to be rejected")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"pas foto budi.jpg", "pas_foto_budi.jpg"},
		{"akta (1).pdf", "akta__1_.pdf"},
		{"kk#rt/rw.pdf", "rw.pdf"}, // path separators strip to base first
		{"simple.png", "simple.png"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
