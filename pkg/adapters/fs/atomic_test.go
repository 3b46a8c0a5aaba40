package fs

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "thoughts.json")

		sum, err := writeFileAtomic(filename, []byte("[]"), 0644)
		require.NoError(t, err)

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got))
		assert.Equal(t, sha256.Sum256([]byte("[]")), sum)
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "thoughts.json")
		require.NoError(t, os.WriteFile(filename, []byte("initial"), 0644))

		_, err := writeFileAtomic(filename, []byte("overwritten"), 0644)
		require.NoError(t, err)

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "overwritten", string(got))
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		_, err := writeFileAtomic(filepath.Join(dir, "thoughts.json"), []byte("[]"), 0644)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "leftover %s", e.Name())
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing_folder", "thoughts.json")
		_, err := writeFileAtomic(filename, []byte("fail"), 0644)
		assert.Error(t, err)
	})
}

func TestChecksumFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "x")
	sum, err := writeFileAtomic(filename, []byte("abc"), 0644)
	require.NoError(t, err)

	got, err := checksumFile(filename)
	require.NoError(t, err)
	assert.Equal(t, sum, got)

	_, err = checksumFile(filename + ".missing")
	assert.True(t, os.IsNotExist(err))
}
