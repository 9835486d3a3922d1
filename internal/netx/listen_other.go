//go:build !unix

package netx

import (
	"context"
	"net"
)

// Listen binds addr with the platform defaults; the backlog cannot be
// chosen through the net package here.
func Listen(ctx context.Context, addr string, _ int) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", addr)
}
