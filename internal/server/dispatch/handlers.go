package dispatch

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/fsrelay/internal/common"
	"github.com/dmitrijs2005/fsrelay/internal/filex"
	"github.com/dmitrijs2005/fsrelay/internal/iox"
	"github.com/dmitrijs2005/fsrelay/internal/protocol"
	"github.com/dmitrijs2005/fsrelay/internal/telemetry"
)

// list answers "ls [path]": one name per line, or the fixed error text,
// then the terminator.
func (s *session) list(ctx context.Context, cmd protocol.Command) (string, error) {
	dir := s.wd.Current()
	if p, ok := cmd.Arg(0); ok {
		dir = s.wd.Resolve(p)
	}

	var buf bytes.Buffer
	status := telemetry.StatusOK

	names, err := filex.ListNames(dir)
	if err != nil {
		s.logger.Debug(ctx, "ls failed", "path", dir, "error", err)
		buf.WriteString(protocol.ErrOpenDirText)
		status = telemetry.StatusFailed
	} else {
		for _, name := range names {
			buf.WriteString(name)
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte(protocol.Terminator)

	return status, s.reply(buf.Bytes())
}

// chdir answers "cd <path>": the new directory and a newline, or the fixed
// error text, then the terminator.
func (s *session) chdir(ctx context.Context, cmd protocol.Command) (string, error) {
	resp := protocol.ErrChangeDirText
	status := telemetry.StatusFailed

	if p, ok := cmd.Arg(0); ok {
		dir, err := s.wd.Chdir(p)
		if err != nil {
			s.logger.Debug(ctx, "cd failed", "path", p, "error", err)
		} else {
			resp = dir + "\n"
			status = telemetry.StatusOK
		}
	}

	return status, s.reply(append([]byte(resp), protocol.Terminator))
}

// transfer answers "cp <src> <dst> <upload|download>". A missing argument or an
// unknown direction gets the usage text and the terminator.
func (s *session) transfer(ctx context.Context, cmd protocol.Command) (string, error) {
	src, okSrc := cmd.Arg(0)
	dst, okDst := cmd.Arg(1)
	dirArg, okDir := cmd.Arg(2)
	dir, okParsed := protocol.ParseDirection(dirArg)

	if !okSrc || !okDst || !okDir || !okParsed {
		return telemetry.StatusFailed, s.reply(append([]byte(protocol.UsageCopyText), protocol.Terminator))
	}

	if dir == protocol.Upload {
		return s.upload(ctx, dst)
	}
	return s.download(ctx, src)
}

// upload receives an int32 size and that many bytes, then stores them at
// dst. An invalid size is answered only after the declared bytes have been
// drained, so the next command line starts where the client expects it.
// The payload is written only once it has arrived in full.
func (s *session) upload(ctx context.Context, dst string) (string, error) {
	var hdr [protocol.UploadSizeWidth]byte
	n, err := iox.ReadExact(s.r, hdr[:])
	if err != nil {
		return telemetry.StatusFailed, err
	}
	if n < len(hdr) {
		return telemetry.StatusClosed, common.ErrConnectionClosed
	}

	size := protocol.DecodeUploadSize(hdr)
	if !protocol.ValidUploadSize(size) {
		if size > 0 {
			dropped, err := iox.Discard(s.r, int64(size))
			if err != nil {
				return telemetry.StatusFailed, err
			}
			if dropped < int64(size) {
				return telemetry.StatusClosed, common.ErrConnectionClosed
			}
		}
		s.logger.Warn(ctx, "rejected upload", "path", dst, "size", size, "limit", protocol.MaxUploadSize)
		return telemetry.StatusFailed, s.reply([]byte(protocol.ErrUploadSizeText))
	}

	data := make([]byte, size)
	n, err = iox.ReadExact(s.r, data)
	if err != nil {
		return telemetry.StatusFailed, err
	}
	if n < len(data) {
		s.logger.Warn(ctx, "upload interrupted", "path", dst, "received", n, "declared", size)
		return telemetry.StatusClosed, common.ErrConnectionClosed
	}

	path := s.wd.Resolve(dst)
	if err := filex.WriteFile(path, data); err != nil {
		s.logger.Debug(ctx, "upload write failed", "path", path, "error", err)
		return telemetry.StatusFailed, s.reply([]byte(protocol.ErrUploadText))
	}
	s.recorder.RecordTransfer(ctx, string(protocol.Upload), int64(size))

	return telemetry.StatusOK, s.reply([]byte(protocol.OKText))
}

// download sends an int64 size and the contents of src. Directories,
// unreadable or missing files and empty files are all sent as size zero
// with no payload. The body is streamed through a fixed buffer; if the
// file ends before the announced size the framing is lost and the
// connection has to go.
func (s *session) download(ctx context.Context, src string) (string, error) {
	path := s.wd.Resolve(src)

	f, size, err := filex.OpenRegular(path)
	if err != nil {
		s.logger.Debug(ctx, "download unavailable", "path", path, "error", err)
		hdr := protocol.EncodeDownloadSize(0)
		return telemetry.StatusFailed, s.reply(hdr[:])
	}
	defer f.Close()

	hdr := protocol.EncodeDownloadSize(size)
	if err := s.reply(hdr[:]); err != nil {
		return telemetry.StatusFailed, err
	}
	if size == 0 {
		return telemetry.StatusOK, nil
	}

	sent, err := iox.Copy(s.w, f, size)
	s.recorder.RecordTransfer(ctx, string(protocol.Download), sent)
	if err != nil {
		return telemetry.StatusFailed, fmt.Errorf("download %s: %w", path, err)
	}
	if sent < size {
		return telemetry.StatusFailed, fmt.Errorf("download %s: file shrank to %d of %d bytes", path, sent, size)
	}
	return telemetry.StatusOK, nil
}
