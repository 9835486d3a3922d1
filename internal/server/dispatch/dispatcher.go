// Package dispatch runs the fsrelay command protocol on one connection.
//
// A Dispatcher reads newline-terminated command lines, executes ls, cd and
// cp against the host filesystem and writes the raw responses back. Errors
// from the filesystem become protocol responses; only a failing or closed
// stream ends Serve.
package dispatch

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/dmitrijs2005/fsrelay/internal/common"
	"github.com/dmitrijs2005/fsrelay/internal/iox"
	"github.com/dmitrijs2005/fsrelay/internal/logging"
	"github.com/dmitrijs2005/fsrelay/internal/protocol"
	"github.com/dmitrijs2005/fsrelay/internal/server/state"
	"github.com/dmitrijs2005/fsrelay/internal/telemetry"
)

var errLineTooLong = errors.New("command line too long")

// Dispatcher executes fsrelay commands against a shared working directory.
type Dispatcher struct {
	wd       *state.WorkDir
	logger   logging.Logger
	recorder *telemetry.Recorder
}

// New returns a Dispatcher operating on the shared working directory wd.
// recorder may be nil.
func New(wd *state.WorkDir, l logging.Logger, recorder *telemetry.Recorder) *Dispatcher {
	return &Dispatcher{
		wd:       wd,
		logger:   l.With("module", "dispatcher"),
		recorder: recorder,
	}
}

// WithLogger returns a Dispatcher that shares d's working directory and
// recorder but logs through l.
func (d *Dispatcher) WithLogger(l logging.Logger) *Dispatcher {
	return &Dispatcher{wd: d.wd, logger: l, recorder: d.recorder}
}

// Serve executes commands read from rw until the peer closes the stream
// (nil) or a read or write fails (the error).
func (d *Dispatcher) Serve(ctx context.Context, rw io.ReadWriter) error {
	s := &session{
		Dispatcher: d,
		r:          bufio.NewReaderSize(iox.RetryReader(rw), protocol.LineBufferSize),
		w:          rw,
	}

	for {
		line, rerr := s.readLine()
		if errors.Is(rerr, errLineTooLong) {
			d.logger.Warn(ctx, "discarded over-long command line", "limit", protocol.LineBufferSize)
			continue
		}

		if cmd, ok := protocol.ParseCommand(line); ok {
			if err := s.run(ctx, cmd); err != nil {
				if errors.Is(err, common.ErrConnectionClosed) {
					return nil
				}
				return err
			}
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			return rerr
		}
	}
}

// session is the per-connection state: the buffered reader must outlive a
// single command because payload bytes may already sit in its buffer.
type session struct {
	*Dispatcher
	r *bufio.Reader
	w io.Writer
}

// readLine returns the next line including its newline. A final line
// without a newline is returned together with io.EOF. A line that does not
// fit the buffer is consumed and reported as errLineTooLong.
func (s *session) readLine() ([]byte, error) {
	line, err := s.r.ReadSlice('\n')
	if !errors.Is(err, bufio.ErrBufferFull) {
		return line, err
	}
	for errors.Is(err, bufio.ErrBufferFull) {
		_, err = s.r.ReadSlice('\n')
	}
	if err != nil {
		return nil, err
	}
	return nil, errLineTooLong
}

func (s *session) run(ctx context.Context, cmd protocol.Command) error {
	start := time.Now()

	var (
		status string
		err    error
	)
	switch cmd.Name {
	case protocol.CmdList:
		status, err = s.list(ctx, cmd)
	case protocol.CmdChdir:
		status, err = s.chdir(ctx, cmd)
	case protocol.CmdCopy:
		status, err = s.transfer(ctx, cmd)
	default:
		s.logger.Debug(ctx, "ignoring unknown command", "command", cmd.Name)
		s.recorder.RecordCommand(ctx, "unknown", telemetry.StatusIgnored, time.Since(start))
		return nil
	}

	elapsed := time.Since(start)
	s.recorder.RecordCommand(ctx, cmd.Name, status, elapsed)
	s.logger.Debug(ctx, "command handled",
		"command", cmd.Name,
		"args", cmd.Args,
		"status", status,
		"elapsed", elapsed,
	)
	return err
}

// reply writes a complete response.
func (s *session) reply(b []byte) error {
	return iox.WriteExact(s.w, b)
}
