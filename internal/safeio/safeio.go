package safeio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Dir confines file writes to a fixed root directory. The root itself does
// not have to exist yet; it is created lazily on the first write.
type Dir struct {
	absRoot string
}

// NewDir binds all future writes to root, resolved to an absolute path.
func NewDir(root string) (*Dir, error) {
	if root == "" {
		return nil, errors.New("safeio: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Dir{absRoot: abs}, nil
}

// Root returns the absolute root directory bound to this Dir.
func (d *Dir) Root() string {
	if d == nil {
		return ""
	}
	return d.absRoot
}

// Resolve returns the absolute location of rel under the root. Absolute
// inputs and paths that escape the root are rejected.
func (d *Dir) Resolve(rel string) (string, error) {
	if d == nil {
		return "", errors.New("safeio: directory not configured")
	}
	if rel == "" {
		return "", errors.New("safeio: empty path")
	}
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", errors.New("safeio: absolute path not allowed")
	}
	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("safeio: path traversal not allowed")
	}
	return filepath.Join(d.absRoot, clean), nil
}

// WriteFile writes content at rel under the root, creating any missing
// parent directories. Existing files are overwritten. Returns the absolute
// path written.
func (d *Dir) WriteFile(rel string, content []byte) (string, error) {
	p, err := d.Resolve(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(p, content, 0o644); err != nil {
		return "", err
	}
	return p, nil
}
