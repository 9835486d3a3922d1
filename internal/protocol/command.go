package protocol

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fsrelay/internal/common"
)

// Command is one parsed request line.
type Command struct {
	Name string
	Args []string
}

// Arg returns the i-th argument, if present.
func (c Command) Arg(i int) (string, bool) {
	if i < 0 || i >= len(c.Args) {
		return "", false
	}
	return c.Args[i], true
}

// ParseCommand splits a request line on whitespace. There is no quoting or
// escaping. A NUL byte ends the line. It reports false for blank lines.
func ParseCommand(line []byte) (Command, bool) {
	if i := bytes.IndexByte(line, 0); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Name: fields[0], Args: fields[1:]}, true
}

// ListRequest builds an ls line. An empty path lists the server's working
// directory.
func ListRequest(path string) (string, error) {
	if path == "" {
		return CmdList + "\n", nil
	}
	return line(CmdList, path)
}

// ChdirRequest builds a cd line.
func ChdirRequest(path string) (string, error) {
	return line(CmdChdir, path)
}

// CopyRequest builds a cp line.
func CopyRequest(src, dst string, dir Direction) (string, error) {
	return line(CmdCopy, src, dst, string(dir))
}

func line(name string, args ...string) (string, error) {
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\r\n\x00") {
			return "", fmt.Errorf("%w: %q", common.ErrWhitespaceInArgument, a)
		}
	}
	return name + " " + strings.Join(args, " ") + "\n", nil
}
