package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"f1map3d/internal/mesh"
)

// Save writes through a temp file in the target directory and renames it
// into place on success. On any error the temp file is removed and the
// destination is left untouched.
func Save(path string, write func(w *os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("export: temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("export: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("export: finalize %s: %w", path, err)
	}
	return nil
}

// SaveAll writes the mesh once per requested format, deriving each output
// path from basePath by swapping the extension. Returns the paths written.
// Supported formats: "obj", "stl".
func SaveAll(basePath string, formats []string, m *mesh.Mesh) ([]string, error) {
	stem := strings.TrimSuffix(basePath, filepath.Ext(basePath))

	var written []string
	for _, f := range formats {
		var (
			path  string
			write func(w *os.File) error
		)
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "obj":
			path = stem + ".obj"
			write = func(w *os.File) error { return WriteOBJ(w, m) }
		case "stl":
			path = stem + ".stl"
			write = func(w *os.File) error { return WriteSTL(w, m) }
		default:
			return written, fmt.Errorf("export: unknown format %q", f)
		}
		if err := Save(path, write); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
