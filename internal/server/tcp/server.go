// Package tcp accepts client connections and hands them, one at a time, to
// the command dispatcher.
package tcp

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/dmitrijs2005/fsrelay/internal/logging"
	"github.com/dmitrijs2005/fsrelay/internal/netx"
	"github.com/dmitrijs2005/fsrelay/internal/server/dispatch"
	"github.com/dmitrijs2005/fsrelay/internal/telemetry"
	"github.com/google/uuid"
)

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// Server accepts TCP connections and serves them one at a time.
type Server struct {
	address     string
	backlog     int
	readTimeout time.Duration
	dispatcher  *dispatch.Dispatcher
	logger      logging.Logger
	recorder    *telemetry.Recorder

	ready chan struct{}
	addr  net.Addr

	mu      sync.Mutex
	active  net.Conn
	closing bool
}

func NewServer(address string, backlog int, readTimeout time.Duration, d *dispatch.Dispatcher, l logging.Logger, recorder *telemetry.Recorder) *Server {
	return &Server{
		address:     address,
		backlog:     backlog,
		readTimeout: readTimeout,
		dispatcher:  d,
		logger:      l.With("module", "tcp_server"),
		recorder:    recorder,
		ready:       make(chan struct{}),
	}
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address. It is nil until Ready is closed.
func (s *Server) Addr() net.Addr {
	select {
	case <-s.ready:
		return s.addr
	default:
		return nil
	}
}

// Run listens on the configured address and serves connections strictly
// one after another until ctx is cancelled. A listen failure is returned;
// cancellation closes the listener and the active connection and yields nil.
func (s *Server) Run(ctx context.Context) error {
	ln, err := netx.Listen(ctx, s.address, s.backlog)
	if err != nil {
		return err
	}
	s.addr = ln.Addr()
	close(s.ready)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping TCP server...")
			_ = ln.Close()
			s.closeActive()
		case <-done:
		}
	}()

	s.logger.Info(ctx, "Starting TCP server", "address", s.addr.String(), "backlog", s.backlog)

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			backoff = nextBackoff(backoff)
			s.logger.Warn(ctx, "accept failed", "error", err, "retry_in", backoff)
			select {
			case <-time.After(backoff):
				continue
			case <-ctx.Done():
				return nil
			}
		}
		backoff = 0

		s.handle(ctx, conn)
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	if !s.setActive(conn) {
		_ = conn.Close()
		return
	}
	defer s.clearActive()
	defer conn.Close()

	l := s.logger.With("conn_id", uuid.NewString(), "remote", conn.RemoteAddr().String())
	s.recorder.RecordConnection(ctx)
	l.Info(ctx, "connection accepted")

	started := time.Now()
	err := s.dispatcher.WithLogger(l).Serve(ctx, netx.NewTimeoutConn(conn, s.readTimeout))
	switch {
	case err == nil:
		l.Info(ctx, "connection closed", "elapsed", time.Since(started))
	case netx.IsTimeout(err):
		l.Info(ctx, "connection idle timeout", "timeout", s.readTimeout)
	case ctx.Err() != nil:
		l.Info(ctx, "connection dropped on shutdown")
	default:
		l.Warn(ctx, "connection failed", "error", err)
	}
}

// setActive records conn as the connection to close on shutdown. It
// reports false when shutdown has already begun.
func (s *Server) setActive(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.active = conn
	return true
}

func (s *Server) clearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

func (s *Server) closeActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closing = true
	if s.active != nil {
		_ = s.active.Close()
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptBackoff
	}
	return min(2*d, maxAcceptBackoff)
}
