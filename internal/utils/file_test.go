package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFileExtension(t *testing.T) {
	tests := map[string]string{
		"photo.JPG":       "jpg",
		"dir/avatar.webp": "webp",
		"noext":           "",
		"archive.tar.gz":  "gz",
		"/tmp/crop1.png":  "png",
	}
	for in, want := range tests {
		if got := GetFileExtension(in); got != want {
			t.Errorf("GetFileExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	if !IsImageFile("a.png") || !IsImageFile("b.JPEG") || !IsImageFile("c.webp") {
		t.Error("expected image extensions to match")
	}
	if IsImageFile("notes.txt") || IsImageFile("png") {
		t.Error("non-image names should not match")
	}
}

func TestEnsureDirAndFileExists(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "a", "b")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir on existing dir failed: %v", err)
	}
	if FileExists(dir) {
		t.Error("directory should not count as a file")
	}

	file := filepath.Join(dir, "x.json")
	if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(file) {
		t.Error("expected file to exist")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("missing file reported as existing")
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := SanitizeFilename(" a/b:c*d. "); got != "a_b_c_d" {
		t.Errorf("SanitizeFilename = %q", got)
	}
}
