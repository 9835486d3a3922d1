package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// execIface defines the minimal command surface the REPL needs to operate.
// *App satisfies it; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Chdir(ctx context.Context, args []string) error
	Copy(ctx context.Context, args []string) error
}

const prompt = "fsrelay> "

// runREPL reads commands from scanner until EOF, "exit" or "quit".
//
//	ls [path]                          list a remote directory
//	cd <path>                          change the remote working directory
//	cp <src> <dst> <upload|download>   transfer a file or directory
//	help                               show available commands
//	exit | quit                        leave the program
//
// A failing command prints its error and the loop goes on. The prompt is
// written only when interactive is set.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner, out io.Writer, interactive bool) {
	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			fmt.Fprintln(out, "Available commands: ls [path], cd <path>, cp <src> <dst> <upload|download>, exit")
		case "ls":
			err = a.List(ctx, args)
		case "cd":
			err = a.Chdir(ctx, args)
		case "cp":
			err = a.Copy(ctx, args)
		case "exit", "quit":
			if interactive {
				fmt.Fprintln(out, "Bye!")
			}
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

func interactive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}
