// Package netx holds the TCP plumbing of the server: a listener with an
// explicit backlog and a connection wrapper that bounds every receive.
package netx

import (
	"errors"
	"net"
	"os"
	"time"
)

// IsLoopback reports whether addr is a host:port pair whose host is a
// loopback IP literal or "localhost".
func IsLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// TimeoutConn re-arms the read deadline before every Read, so the timeout
// limits how long a single receive may stay idle rather than the lifetime
// of the connection.
type TimeoutConn struct {
	net.Conn
	timeout time.Duration
}

func NewTimeoutConn(c net.Conn, timeout time.Duration) *TimeoutConn {
	return &TimeoutConn{Conn: c, timeout: timeout}
}

func (c *TimeoutConn) Read(p []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(p)
}

// IsTimeout reports whether err came from an expired deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
