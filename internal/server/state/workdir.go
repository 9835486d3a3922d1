// Package state holds server state that outlives a single connection.
package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// WorkDir is the working directory shared by every connection: a cd on one
// connection is visible to the next.
//
// It is not safe for concurrent use. The server handles one command at a
// time, so none is needed; a concurrent server would give each connection
// its own WorkDir instead of locking this one.
type WorkDir struct {
	current string
}

// NewWorkDir resolves initial to a physical absolute directory. An empty
// initial uses the process working directory.
func NewWorkDir(initial string) (*WorkDir, error) {
	if initial == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		initial = cwd
	}
	dir, err := physicalDir(initial)
	if err != nil {
		return nil, err
	}
	return &WorkDir{current: dir}, nil
}

// Current returns the working directory.
func (w *WorkDir) Current() string {
	return w.current
}

// Resolve makes p absolute against the working directory.
func (w *WorkDir) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(w.current, p)
}

// Chdir moves the working directory to p and returns the new location.
// Symlinks are resolved, as getcwd(3) would after chdir(2). On failure the
// working directory is unchanged.
func (w *WorkDir) Chdir(p string) (string, error) {
	dir, err := physicalDir(w.Resolve(p))
	if err != nil {
		return "", err
	}
	w.current = dir
	return dir, nil
}

func physicalDir(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%s: not a directory", resolved)
	}
	return resolved, nil
}
