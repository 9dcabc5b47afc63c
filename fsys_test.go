package brarchive

import (
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArchive(t *testing.T, entries map[string][]byte) *Archive {
	t.Helper()
	a, err := New(entries)
	require.NoError(t, err)
	return a
}

func TestArchive_FS(t *testing.T) {
	t.Parallel()

	a := testArchive(t, map[string][]byte{
		"a.txt":         []byte("root file"),
		"dir/b.txt":     []byte("nested"),
		"dir/sub/c.txt": []byte("deeper"),
	})

	require.NoError(t, fstest.TestFS(a, "a.txt", "dir/b.txt", "dir/sub/c.txt"))
}

func TestArchive_Open(t *testing.T) {
	t.Parallel()

	a := testArchive(t, map[string][]byte{
		"etc/hosts": []byte("localhost"),
	})

	f, err := a.Open("etc/hosts")
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("localhost"), content)

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "hosts", info.Name())
	assert.Equal(t, int64(9), info.Size())
	assert.False(t, info.IsDir())
}

func TestArchive_OpenDir(t *testing.T) {
	t.Parallel()

	a := testArchive(t, map[string][]byte{
		"etc/nginx/nginx.conf": []byte("config"),
		"etc/hosts":            []byte("hosts"),
	})

	f, err := a.Open("etc")
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	dir, ok := f.(fs.ReadDirFile)
	require.True(t, ok)
	entries, err := dir.ReadDir(-1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "hosts", entries[0].Name())
	assert.False(t, entries[0].IsDir())
	assert.Equal(t, "nginx", entries[1].Name())
	assert.True(t, entries[1].IsDir())
}

func TestArchive_OpenErrors(t *testing.T) {
	t.Parallel()

	a := testArchive(t, map[string][]byte{"a.txt": []byte("x")})

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing", "b.txt", fs.ErrNotExist},
		{"traversal", "../escape", fs.ErrInvalid},
		{"dot element", "dir/./a", fs.ErrInvalid},
		{"absolute", "/a.txt", fs.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := a.Open(tt.path)
			var pathErr *fs.PathError
			require.ErrorAs(t, err, &pathErr)
			require.ErrorIs(t, pathErr.Err, tt.wantErr)
		})
	}
}

func TestArchive_Stat(t *testing.T) {
	t.Parallel()

	a := testArchive(t, map[string][]byte{
		"dir/file.txt": []byte("12345"),
	})

	info, err := a.Stat("dir/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "file.txt", info.Name())
	assert.Equal(t, int64(5), info.Size())

	info, err = a.Stat("dir")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = a.Stat(".")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = a.Stat("missing")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestArchive_ReadFile(t *testing.T) {
	t.Parallel()

	a := testArchive(t, map[string][]byte{"a": []byte("abc")})

	content, err := a.ReadFile("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), content)

	// ReadFile returns a copy owned by the caller.
	content[0] = 'X'
	again, err := a.ReadFile("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)

	_, err = a.ReadFile("missing")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestArchive_ReadDir(t *testing.T) {
	t.Parallel()

	a := testArchive(t, map[string][]byte{
		"a.txt":     []byte("1"),
		"dir/b.txt": []byte("2"),
		"dir/c.txt": []byte("3"),
	})

	entries, err := a.ReadDir(".")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Equal(t, "dir", entries[1].Name())

	entries, err = a.ReadDir("dir")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b.txt", entries[0].Name())
	assert.Equal(t, "c.txt", entries[1].Name())

	_, err = a.ReadDir("missing")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestArchive_ReadDirEmptyArchive(t *testing.T) {
	t.Parallel()

	a := testArchive(t, nil)
	entries, err := a.ReadDir(".")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArchive_Entries(t *testing.T) {
	t.Parallel()

	a := testArchive(t, map[string][]byte{
		"z": []byte("3"),
		"a": []byte("1"),
		"m": []byte("2"),
	})

	var names []string
	for name, content := range a.Entries() {
		names = append(names, name)
		require.NotEmpty(t, content)
	}
	assert.Equal(t, []string{"a", "m", "z"}, names)
}

func TestArchive_EmptyNameNotInFSView(t *testing.T) {
	t.Parallel()

	data, err := Encode(map[string][]byte{"": []byte("x")})
	require.NoError(t, err)
	a, err := Decode(data)
	require.NoError(t, err)

	content, ok := a.Content("")
	require.True(t, ok)
	assert.Equal(t, []byte("x"), content)

	_, err = a.Open("")
	require.ErrorIs(t, err, fs.ErrInvalid)
}
