package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/fsrelay/internal/client/client"
	"github.com/dmitrijs2005/fsrelay/internal/protocol"
)

var errUsage = errors.New("usage")

// remote is the part of *client.Client the commands use.
type remote interface {
	List(ctx context.Context, path string) ([]string, error)
	Chdir(ctx context.Context, path string) (string, error)
	UploadFile(ctx context.Context, local, remote string) error
	DownloadTree(ctx context.Context, src, localDir string, report client.ReportFunc) error
	DownloadTo(ctx context.Context, src, dst string, report client.ReportFunc) error
	Close() error
}

// App executes user commands over one server connection.
type App struct {
	remote remote
	out    io.Writer
}

func NewApp(r remote, out io.Writer) *App {
	return &App{remote: r, out: out}
}

func (a *App) Close() error {
	return a.remote.Close()
}

// List prints the names in args[0], or in the remote working directory.
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: ls [path]", errUsage)
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	names, err := a.remote.List(ctx, path)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(a.out, n)
	}
	return nil
}

// Chdir changes the remote working directory and prints the new one.
func (a *App) Chdir(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: cd <path>", errUsage)
	}
	dir, err := a.remote.Chdir(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, dir)
	return nil
}

// Copy runs "cp <src> <dst> <upload|download>".
func (a *App) Copy(ctx context.Context, args []string) error {
	if len(args) == 3 {
		switch dir, _ := protocol.ParseDirection(args[2]); dir {
		case protocol.Upload:
			return a.Put(ctx, args[0], args[1])
		case protocol.Download:
			return a.Fetch(ctx, args[0], args[1])
		}
	}
	return fmt.Errorf("%w: cp <src> <dst> <upload|download>", errUsage)
}

// Put uploads the local file to the remote path.
func (a *App) Put(ctx context.Context, local, remotePath string) error {
	if err := a.remote.UploadFile(ctx, local, remotePath); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s -> %s\n", local, remotePath)
	return nil
}

// Fetch downloads the remote path to the local path dst: a file becomes
// dst, a directory has its contents mirrored into dst.
func (a *App) Fetch(ctx context.Context, remotePath, dst string) error {
	return a.remote.DownloadTo(ctx, remotePath, dst, a.report)
}

// Get downloads the remote path, file or directory, into localDir.
func (a *App) Get(ctx context.Context, remotePath, localDir string) error {
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return err
	}
	return a.remote.DownloadTree(ctx, remotePath, localDir, a.report)
}

func (a *App) report(p string, n int64) {
	fmt.Fprintf(a.out, "%s (%d bytes)\n", p, n)
}
