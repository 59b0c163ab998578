// Package storage persists uploaded files on the local filesystem, grouped
// by the module tag that owns them.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore writes files under root/<module>/ and reports paths prefixed
// with publicPath, which is what gets recorded in image metadata.
type DiskStore struct {
	root       string
	publicPath string
}

func NewDiskStore(root, publicPath string) *DiskStore {
	return &DiskStore{root: root, publicPath: publicPath}
}

// Exists reports whether a file with this name is already on disk.
func (d *DiskStore) Exists(module, name, ext string) bool {
	_, err := os.Stat(d.filePath(module, name, ext))
	return err == nil
}

// Save writes the file and returns its public path.
func (d *DiskStore) Save(module, name, ext string, data []byte) (string, error) {
	dir := filepath.Join(d.root, module)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	if err := os.WriteFile(d.filePath(module, name, ext), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s.%s", d.publicPath, module, name, ext), nil
}

func (d *DiskStore) filePath(module, name, ext string) string {
	return filepath.Join(d.root, module, name+"."+ext)
}
