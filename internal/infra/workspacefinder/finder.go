package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

var _ ports.WorkspaceLocator = (*Finder)(nil)

// Finder locates a libris workspace root by searching for libris.yaml upward.
type Finder struct {
	ConfigFile string // defaults to "libris.yaml"
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFile}
}

// FindRoot returns the closest directory at or above startDir that holds the
// config file. A file path starts the walk at its directory.
func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", findErr(domain.KindInvalidConfig, errors.New("start directory is empty"))
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", findErr(domain.KindInvalidConfig, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	name := f.ConfigFile
	if name == "" {
		name = ConfigFile
	}

	for dir = filepath.Clean(dir); ; dir = filepath.Dir(dir) {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return dir, nil
		}
		if filepath.Dir(dir) == dir {
			return "", findErr(domain.KindNotFound, domain.ErrNotFound)
		}
	}
}

func findErr(kind domain.ErrorKind, err error) error {
	return &domain.OpError{Op: "workspacefinder.findroot", Kind: kind, Err: err}
}
