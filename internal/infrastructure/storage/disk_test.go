package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiskStore_SaveAndExists(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "/uploads")

	if store.Exists("USERS", "abc", "jpeg") {
		t.Fatalf("file must not exist before save")
	}

	path, err := store.Save("USERS", "abc", "jpeg", []byte("image bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != "/uploads/USERS/abc.jpeg" {
		t.Fatalf("unexpected public path %q", path)
	}

	if !store.Exists("USERS", "abc", "jpeg") {
		t.Fatalf("file missing after save")
	}

	data, err := os.ReadFile(filepath.Join(root, "USERS", "abc.jpeg"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "image bytes" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestDiskStore_SaveCreatesModuleDir(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "/uploads")

	if _, err := store.Save("PRODUCTS", "xyz", "png", []byte{1, 2, 3}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "PRODUCTS")); err != nil {
		t.Fatalf("module dir not created: %v", err)
	}
}
