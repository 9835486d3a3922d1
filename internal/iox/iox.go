// Package iox provides exact-count read and write helpers used for every
// socket and file transfer in fsrelay.
//
// Unlike io.ReadFull, ReadExact reports a clean end of stream before the
// buffer is full as a short count with a nil error, so callers can tell a
// client that went away apart from a genuine I/O failure.
package iox

import (
	"errors"
	"io"
)

// scratchSize bounds the memory used by Discard and Copy.
const scratchSize = 32 * 1024

// ReadExact reads from r until buf is full.
//
// Interrupted reads are retried. On a clean end of stream it returns the
// number of bytes obtained so far and a nil error. Any other failure is
// returned together with the count read before it.
func ReadExact(r io.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err == nil {
			continue
		}
		if isInterrupted(err) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		return total, err
	}
	return total, nil
}

// WriteExact writes all of p to w, retrying interrupted writes.
// A writer that makes no progress without reporting an error yields
// io.ErrShortWrite.
func WriteExact(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		p = p[n:]
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

// Discard reads and drops exactly n bytes from r using a fixed scratch
// buffer. It returns the number of bytes dropped; a count below n with a
// nil error means the stream ended early.
func Discard(r io.Reader, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	buf := make([]byte, min(n, scratchSize))
	var done int64
	for done < n {
		chunk := buf[:min(n-done, int64(len(buf)))]
		got, err := ReadExact(r, chunk)
		done += int64(got)
		if err != nil {
			return done, err
		}
		if got < len(chunk) {
			return done, nil
		}
	}
	return done, nil
}

// Copy moves exactly n bytes from src to dst through a fixed buffer.
// It returns the number of bytes written; a count below n with a nil error
// means src ended early.
func Copy(dst io.Writer, src io.Reader, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	buf := make([]byte, min(n, scratchSize))
	var done int64
	for done < n {
		chunk := buf[:min(n-done, int64(len(buf)))]
		got, err := ReadExact(src, chunk)
		if got > 0 {
			if werr := WriteExact(dst, chunk[:got]); werr != nil {
				return done, werr
			}
			done += int64(got)
		}
		if err != nil {
			return done, err
		}
		if got < len(chunk) {
			return done, nil
		}
	}
	return done, nil
}

type retryReader struct {
	r io.Reader
}

// RetryReader wraps r so that interrupted reads which returned no data are
// retried. It lets buffered readers layered on top of a socket keep the
// same interruption semantics as ReadExact.
func RetryReader(r io.Reader) io.Reader {
	return retryReader{r: r}
}

func (rr retryReader) Read(p []byte) (int, error) {
	for {
		n, err := rr.r.Read(p)
		if err != nil && n == 0 && isInterrupted(err) {
			continue
		}
		return n, err
	}
}
