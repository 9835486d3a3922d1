package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/dmitrijs2005/fsrelay/internal/common"
)

// ReportFunc is told about every local file a tree download writes.
type ReportFunc func(local string, n int64)

// DownloadTree copies src from the server into localDir, keeping its base
// name. When src names a directory by "." or "/", its contents are mirrored
// into localDir itself.
func (c *Client) DownloadTree(ctx context.Context, src, localDir string, report ReportFunc) error {
	switch base := path.Base(src); base {
	case ".", "/":
		return c.DownloadTo(ctx, src, localDir, report)
	default:
		return c.DownloadTo(ctx, src, filepath.Join(localDir, base), report)
	}
}

// DownloadTo copies src from the server to the local path dst. A regular
// file is written to dst itself; a directory has its contents mirrored into
// dst, which is created if needed.
//
// The protocol cannot tell a directory from an empty or missing file: all
// three download as zero bytes. A zero-byte result is therefore listed; if
// that fails the parent listing decides between an empty file and
// common.ErrNotFound. Remote paths use forward slashes.
func (c *Client) DownloadTo(ctx context.Context, src, dst string, report ReportFunc) error {
	tmp, n, err := c.downloadTemp(ctx, src, filepath.Dir(dst))
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if n > 0 {
		if err := os.Rename(tmp, dst); err != nil {
			return err
		}
		report.call(dst, n)
		return nil
	}

	names, err := c.List(ctx, src)
	switch {
	case err == nil:
		return c.mirror(ctx, src, dst, names, report)
	case !errors.Is(err, common.ErrRemote):
		return err
	}

	ok, err := c.exists(ctx, src)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("download %s: %w", src, common.ErrNotFound)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return err
	}
	report.call(dst, 0)
	return nil
}

// downloadTemp stores src in a fresh file under dir so that dst is only
// touched once the kind of src is known.
func (c *Client) downloadTemp(ctx context.Context, src, dir string) (string, int64, error) {
	f, err := os.CreateTemp(dir, ".fsrelay-*")
	if err != nil {
		return "", 0, err
	}
	n, err := c.Download(ctx, src, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", 0, err
	}
	return f.Name(), n, nil
}

func (c *Client) mirror(ctx context.Context, src, dst string, names []string, report ReportFunc) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dst, err)
	}
	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}
		if err := c.DownloadTo(ctx, path.Join(src, name), filepath.Join(dst, name), report); err != nil {
			return err
		}
	}
	return nil
}

// exists reports whether src appears in the listing of its parent.
func (c *Client) exists(ctx context.Context, src string) (bool, error) {
	names, err := c.List(ctx, path.Dir(src))
	if errors.Is(err, common.ErrRemote) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return slices.Contains(names, path.Base(src)), nil
}

func (r ReportFunc) call(local string, n int64) {
	if r != nil {
		r(local, n)
	}
}
