// Package filex wraps the host filesystem operations behind ls and cp.
package filex

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/fsrelay/internal/common"
	"github.com/dmitrijs2005/fsrelay/internal/iox"
)

// UploadMode is the permission given to files created by an upload.
const UploadMode os.FileMode = 0o644

// ListNames returns the names in dir in the order the OS enumerates them,
// led by "." and ".." as readdir(3) reports them.
func ListNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %w", dir, err)
	}
	return append([]string{".", ".."}, names...), nil
}

// WriteFile creates or truncates path and writes data to it.
func WriteFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, UploadMode)
	if err != nil {
		return err
	}
	if err := iox.WriteExact(f, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// OpenRegular opens path for reading and returns its size. Directories are
// rejected with common.ErrNotRegular.
func OpenRegular(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, 0, fmt.Errorf("%s: %w", path, common.ErrNotRegular)
	}
	return f, fi.Size(), nil
}
