package iox

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroWriter accepts nothing and reports no error.
type zeroWriter struct{}

func (zeroWriter) Write([]byte) (int, error) { return 0, nil }

// chunkWriter writes at most max bytes per call.
type chunkWriter struct {
	buf bytes.Buffer
	max int
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	if len(p) > w.max {
		p = p[:w.max]
	}
	return w.buf.Write(p)
}

func TestReadExact(t *testing.T) {
	tests := []struct {
		name    string
		src     io.Reader
		size    int
		wantN   int
		wantErr bool
	}{
		{name: "exact", src: bytes.NewReader([]byte("abcdef")), size: 6, wantN: 6},
		{name: "one byte at a time", src: iotest.OneByteReader(bytes.NewReader([]byte("abcdef"))), size: 6, wantN: 6},
		{name: "short read is not an error", src: bytes.NewReader([]byte("abc")), size: 6, wantN: 3},
		{name: "eof with data", src: iotest.DataErrReader(bytes.NewReader([]byte("abc"))), size: 3, wantN: 3},
		{name: "empty stream", src: bytes.NewReader(nil), size: 4, wantN: 0},
		{name: "hard error", src: iotest.ErrReader(errors.New("boom")), size: 4, wantN: 0, wantErr: true},
		{name: "zero length", src: iotest.ErrReader(errors.New("never read")), size: 0, wantN: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)
			n, err := ReadExact(tt.src, buf)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantN, n)
		})
	}
}

func TestReadExact_HardErrorAfterData(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(bytes.NewReader([]byte("ab")), iotest.ErrReader(boom))

	buf := make([]byte, 5)
	n, err := ReadExact(r, buf)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("ab"), buf[:n])
}

func TestWriteExact(t *testing.T) {
	t.Run("partial writes are continued", func(t *testing.T) {
		w := &chunkWriter{max: 3}
		require.NoError(t, WriteExact(w, []byte("hello, world")))
		assert.Equal(t, "hello, world", w.buf.String())
	})

	t.Run("no progress is a short write", func(t *testing.T) {
		err := WriteExact(zeroWriter{}, []byte("x"))
		require.ErrorIs(t, err, io.ErrShortWrite)
	})

	t.Run("empty input writes nothing", func(t *testing.T) {
		require.NoError(t, WriteExact(zeroWriter{}, nil))
	})
}

func TestDiscard(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 3*scratchSize+17)
	r := bytes.NewReader(append(payload, []byte("tail")...))

	n, err := Discard(r, int64(len(payload)))
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "tail", string(rest))
}

func TestDiscard_StreamEndsEarly(t *testing.T) {
	n, err := Discard(bytes.NewReader([]byte("abc")), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestDiscard_NonPositive(t *testing.T) {
	n, err := Discard(iotest.ErrReader(errors.New("never read")), 0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCopy(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789"), scratchSize/4)
	var dst bytes.Buffer

	n, err := Copy(&dst, bytes.NewReader(payload), int64(len(payload)-5))
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)-5), n)
	assert.Equal(t, payload[:len(payload)-5], dst.Bytes())
}

func TestCopy_SourceShort(t *testing.T) {
	var dst bytes.Buffer
	n, err := Copy(&dst, bytes.NewReader([]byte("abc")), 8)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "abc", dst.String())
}
