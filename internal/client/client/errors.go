package client

import (
	"strings"

	"github.com/dmitrijs2005/fsrelay/internal/common"
)

// RemoteError carries the fixed failure text sent by the server.
type RemoteError struct {
	Op   string
	Text string
}

func (e *RemoteError) Error() string {
	return e.Op + ": " + strings.TrimRight(e.Text, "\n")
}

func (e *RemoteError) Unwrap() error {
	return common.ErrRemote
}
