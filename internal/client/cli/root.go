package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fsrelay/internal/client/client"
	"github.com/dmitrijs2005/fsrelay/internal/client/config"
	"github.com/spf13/cobra"
)

// dial is a test seam for client.Dial.
var dial = func(ctx context.Context, cfg *config.Config) (remote, error) {
	return client.Dial(ctx, cfg.ServerAddr, cfg.Timeout)
}

// Run executes the client with the given args and returns the exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "fsrelay:", err)
		return 1
	}
	return 0
}

// NewRootCmd creates the root command with its subcommands.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "fsrelay",
		Short:         "Browse and transfer files on an fsrelay server",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, stdout, func(ctx context.Context, a *App) error {
				in := cmd.InOrStdin()
				tty := interactive(in)
				if tty {
					fmt.Fprintln(stdout, "fsrelay client (type 'help' for commands)")
				}
				runREPL(ctx, a, bufio.NewScanner(in), stdout, tty)
				return nil
			})
		},
	}
	config.RegisterFlags(root.PersistentFlags())
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(
		newLsCmd(stdout),
		newGetCmd(stdout),
		newPutCmd(stdout),
	)
	return root
}

func newLsCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List a remote directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, stdout, func(ctx context.Context, a *App) error {
				return a.List(ctx, args)
			})
		},
	}
}

func newGetCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "get <remote> [local-dir]",
		Short: "Download a remote file or directory",
		Long: `Download a remote file or directory into local-dir (default ".").

The server reports directories as empty downloads, so a zero-byte result is
listed and fetched recursively when it turns out to be a directory.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			localDir := "."
			if len(args) == 2 {
				localDir = args[1]
			}
			return withApp(cmd, stdout, func(ctx context.Context, a *App) error {
				return a.Get(ctx, args[0], localDir)
			})
		},
	}
}

func newPutCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "put <local> <remote>",
		Short: "Upload a local file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, stdout, func(ctx context.Context, a *App) error {
				return a.Put(ctx, args[0], args[1])
			})
		},
	}
}

// withApp loads the config, connects and runs fn with the resulting App.
func withApp(cmd *cobra.Command, stdout io.Writer, fn func(context.Context, *App) error) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	r, err := dial(ctx, cfg)
	if err != nil {
		return err
	}
	a := NewApp(r, stdout)
	defer a.Close()
	return fn(ctx, a)
}
