package brarchive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	entries := map[string][]byte{
		"a.txt":     []byte("hello"),
		"dir/b.bin": {0x00, 0x01, 0x02},
	}

	path := filepath.Join(t.TempDir(), "test"+Extension)
	require.NoError(t, EncodeFile(path, entries))

	a, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())
	for name, want := range entries {
		got, ok := a.Content(name)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestEncodeFile_CreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deep", "test"+Extension)
	require.NoError(t, EncodeFile(path, map[string][]byte{"a": []byte("x")}))

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}

func TestEncodeFile_ReplacesAtomically(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "test"+Extension)
	require.NoError(t, EncodeFile(path, map[string][]byte{"v1": []byte("x")}))
	require.NoError(t, EncodeFile(path, map[string][]byte{"v2": []byte("y")}))

	a, err := DecodeFile(path)
	require.NoError(t, err)
	_, ok := a.Content("v2")
	assert.True(t, ok)
	_, ok = a.Content("v1")
	assert.False(t, ok)

	// No temp files left behind.
	matches, err := filepath.Glob(filepath.Join(dir, ".brarchive-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestEncodeFile_InvalidEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test"+Extension)
	encodeErr := EncodeFile(path, map[string][]byte{"bad\xff": nil})
	require.ErrorIs(t, encodeErr, ErrInvalidUTF8)

	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestDecodeFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := DecodeFile(filepath.Join(t.TempDir(), "missing"+Extension))
	require.ErrorIs(t, err, os.ErrNotExist)
}
