// Package resources locates the credential files shipped next to the app.
package resources

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/shoplist/internal/logger"
)

// Resolver maps resource names to paths inside one base directory.
type Resolver struct {
	dir string
}

// NewResolver picks the base directory: configured when set, else the
// executable's directory when it holds marker, else the working directory.
func NewResolver(configured, marker string) *Resolver {
	return newResolver(configured, marker, os.Executable, os.Getwd)
}

func newResolver(configured, marker string, executable, workdir func() (string, error)) *Resolver {
	if configured != "" {
		return &Resolver{dir: configured}
	}

	if exe, err := executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir := filepath.Dir(exe)
		if marker != "" && fileExists(filepath.Join(dir, marker)) {
			return &Resolver{dir: dir}
		}
	}

	dir, err := workdir()
	if err != nil {
		logger.Warn("Cannot determine working directory: %v", err)
		dir = "."
	}
	return &Resolver{dir: dir}
}

// Dir returns the base directory.
func (r *Resolver) Dir() string {
	return r.dir
}

// Path returns name unchanged if absolute, else joined to the base directory.
func (r *Resolver) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.dir, name)
}

// Read returns the contents of a resource. A missing file yields an error
// matching os.ErrNotExist.
func (r *Resolver) Read(name string) ([]byte, error) {
	path := r.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource %s: %w", path, err)
	}
	logger.Debug("Loaded resource %s (%d bytes)", path, len(data))
	return data, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
