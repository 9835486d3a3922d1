package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/fsrelay/internal/common"
	"github.com/dmitrijs2005/fsrelay/internal/iox"
	"github.com/dmitrijs2005/fsrelay/internal/netx"
	"github.com/dmitrijs2005/fsrelay/internal/protocol"
)

// placeholder fills the unused path slot of a cp line.
const placeholder = "-"

// Client is a connection to an fsrelay server.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
}

// Dial connects to addr. timeout bounds the connect and every later
// receive.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return newClient(conn, timeout), nil
}

func newClient(conn net.Conn, timeout time.Duration) *Client {
	return &Client{
		conn: conn,
		r:    bufio.NewReader(iox.RetryReader(netx.NewTimeoutConn(conn, timeout))),
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// List returns the names in path on the server, or in its working directory
// when path is empty.
func (c *Client) List(ctx context.Context, path string) ([]string, error) {
	req, err := protocol.ListRequest(path)
	if err != nil {
		return nil, err
	}

	var text string
	err = c.do(ctx, func() error {
		if err := c.send([]byte(req)); err != nil {
			return err
		}
		text, err = c.readText()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ls %s: %w", path, err)
	}
	if text == protocol.ErrOpenDirText {
		return nil, &RemoteError{Op: "ls " + path, Text: text}
	}
	if text == "" {
		return nil, nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n"), nil
}

// Chdir changes the server's working directory and returns the new one.
func (c *Client) Chdir(ctx context.Context, path string) (string, error) {
	req, err := protocol.ChdirRequest(path)
	if err != nil {
		return "", err
	}

	var text string
	err = c.do(ctx, func() error {
		if err := c.send([]byte(req)); err != nil {
			return err
		}
		text, err = c.readText()
		return err
	})
	if err != nil {
		return "", fmt.Errorf("cd %s: %w", path, err)
	}
	if text == protocol.ErrChangeDirText {
		return "", &RemoteError{Op: "cd " + path, Text: text}
	}
	return strings.TrimSuffix(text, "\n"), nil
}

// Upload stores data at dst on the server.
func (c *Client) Upload(ctx context.Context, dst string, data []byte) error {
	if len(data) > protocol.MaxUploadSize || !protocol.ValidUploadSize(int32(len(data))) {
		return fmt.Errorf("upload %s: %w: %d bytes", dst, common.ErrUploadSize, len(data))
	}
	req, err := protocol.CopyRequest(placeholder, dst, protocol.Upload)
	if err != nil {
		return err
	}

	var resp string
	err = c.do(ctx, func() error {
		hdr := protocol.EncodeUploadSize(int32(len(data)))
		if err := c.send([]byte(req), hdr[:], data); err != nil {
			return err
		}
		resp, err = c.readLine()
		return err
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", dst, err)
	}
	if resp != protocol.OKText {
		return &RemoteError{Op: "upload " + dst, Text: resp}
	}
	return nil
}

// UploadFile sends the local file to remote.
func (c *Client) UploadFile(ctx context.Context, local, remote string) error {
	fi, err := os.Stat(local)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s: %w", local, common.ErrNotRegular)
	}
	if fi.Size() <= 0 || fi.Size() > protocol.MaxUploadSize {
		return fmt.Errorf("upload %s: %w: %d bytes", local, common.ErrUploadSize, fi.Size())
	}

	data, err := os.ReadFile(local)
	if err != nil {
		return err
	}
	return c.Upload(ctx, remote, data)
}

// Download copies the contents of src on the server into w and returns the
// number of bytes written. Zero covers directories, missing and empty files
// alike.
func (c *Client) Download(ctx context.Context, src string, w io.Writer) (int64, error) {
	req, err := protocol.CopyRequest(src, placeholder, protocol.Download)
	if err != nil {
		return 0, err
	}

	var n int64
	err = c.do(ctx, func() error {
		if err := c.send([]byte(req)); err != nil {
			return err
		}

		var hdr [protocol.DownloadSizeWidth]byte
		got, err := iox.ReadExact(c.r, hdr[:])
		if err != nil {
			return err
		}
		if got < len(hdr) {
			return common.ErrConnectionClosed
		}

		size := protocol.DecodeDownloadSize(hdr)
		if size < 0 {
			return fmt.Errorf("negative size %d", size)
		}

		n, err = iox.Copy(w, c.r, size)
		if err != nil {
			return err
		}
		if n < size {
			return common.ErrConnectionClosed
		}
		return nil
	})
	if err != nil {
		return n, fmt.Errorf("download %s: %w", src, err)
	}
	return n, nil
}

// do runs one request/response exchange. If ctx ends while it is in
// flight the connection is closed to unblock it.
func (c *Client) do(ctx context.Context, exchange func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { _ = c.conn.Close() })
	err := exchange()
	if !stop() {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
	}
	return err
}

func (c *Client) send(parts ...[]byte) error {
	for _, p := range parts {
		if err := iox.WriteExact(c.conn, p); err != nil {
			return err
		}
	}
	return nil
}

// readText reads a zero-terminated response without the terminator.
func (c *Client) readText() (string, error) {
	b, err := c.r.ReadBytes(protocol.Terminator)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", common.ErrConnectionClosed
		}
		return "", err
	}
	return string(b[:len(b)-1]), nil
}

// readLine reads a newline-terminated response including the newline.
func (c *Client) readLine() (string, error) {
	s, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", common.ErrConnectionClosed
		}
		return "", err
	}
	return s, nil
}
