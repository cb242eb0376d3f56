package media

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// 保存と削除の往復を検証
func TestLocalBlobStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalBlobStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("NewLocalBlobStore failed: %v", err)
	}

	content := []byte("contenu du fichier")
	written, err := store.Save("image", "abc123.png", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if written != int64(len(content)) {
		t.Errorf("written = %d, want %d", written, len(content))
	}

	got, err := os.ReadFile(filepath.Join(dir, "uploads", "image", "abc123.png"))
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("saved content does not match")
	}

	if err := store.Remove("image", "abc123.png"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "uploads", "image", "abc123.png")); !os.IsNotExist(err) {
		t.Error("file should be removed")
	}
}

// パス要素を含む保存名・サブディレクトリ名が拒否されることを検証
func TestLocalBlobStore_RejectsPathTraversal(t *testing.T) {
	store, err := NewLocalBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalBlobStore failed: %v", err)
	}

	for _, name := range []string{"../evil.png", "sub/dir.png", "/etc/passwd", "..", ""} {
		if _, err := store.Save("image", name, bytes.NewReader([]byte("x"))); err == nil {
			t.Errorf("Save(image, %q) should fail", name)
		}
	}

	for _, subdir := range []string{"../outside", "a/b", "..", ""} {
		if _, err := store.Save(subdir, "ok.png", bytes.NewReader([]byte("x"))); err == nil {
			t.Errorf("Save(%q, ok.png) should fail", subdir)
		}
	}
}

// 同名ファイルへの二重保存が失敗することを検証
func TestLocalBlobStore_NoOverwrite(t *testing.T) {
	store, err := NewLocalBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalBlobStore failed: %v", err)
	}

	if _, err := store.Save("document", "dup.pdf", bytes.NewReader([]byte("premier"))); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if _, err := store.Save("document", "dup.pdf", bytes.NewReader([]byte("second"))); err == nil {
		t.Error("second Save with same name should fail")
	}
}

// 存在しないファイルのRemoveがエラーにならないことを検証
func TestLocalBlobStore_RemoveMissing(t *testing.T) {
	store, err := NewLocalBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalBlobStore failed: %v", err)
	}
	if err := store.Remove("image", "inconnu.png"); err != nil {
		t.Errorf("Remove of missing file should not fail: %v", err)
	}
}
