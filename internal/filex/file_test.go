package filex

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dmitrijs2005/fsrelay/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bin"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "nested"), nil, 0o644))

	names, err := ListNames(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{".", ".."}, names[:2])
	assert.ElementsMatch(t, []string{"a.txt", "b.bin", "sub"}, names[2:])
}

func TestListNames_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := ListNames(filepath.Join(dir, "missing"))
	require.Error(t, err)

	_, err = ListNames(file)
	require.Error(t, err)
}

func TestWriteFile_CreatesAndTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	require.NoError(t, WriteFile(path, []byte("first version, long")))
	require.NoError(t, WriteFile(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Zero(t, fi.Mode().Perm()&^UploadMode, "mode must not exceed 0644")
	}
}

func TestWriteFile_MissingParent(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir", "f"), []byte("x"))
	require.Error(t, err)
}

func TestOpenRegular(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

	f, size, err := OpenRegular(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, int64(7), size)
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
}

func TestOpenRegular_Directory(t *testing.T) {
	_, _, err := OpenRegular(t.TempDir())
	require.ErrorIs(t, err, common.ErrNotRegular)
}

func TestOpenRegular_Missing(t *testing.T) {
	_, _, err := OpenRegular(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
