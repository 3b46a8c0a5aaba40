package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/thoughts/pkg/adapters/fs"
	"github.com/aretw0/thoughts/pkg/core"
)

// setupRepo creates an initialized repository in a temp directory.
func setupRepo(t *testing.T, opts ...func(*fs.Config)) (*fs.Repository, string) {
	t.Helper()

	dataDir := filepath.Join(t.TempDir(), "data")
	cfg := fs.Config{Path: dataDir}
	for _, opt := range opts {
		opt(&cfg)
	}

	repo := fs.NewRepository(cfg)
	if !cfg.MustExist {
		require.NoError(t, repo.Initialize(context.Background()))
	}
	return repo, dataDir
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Directory if Missing", func(t *testing.T) {
		_, path := setupRepo(t)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		repo, _ := setupRepo(t, func(c *fs.Config) { c.MustExist = true })
		assert.Error(t, repo.Initialize(context.Background()))
	})

	t.Run("Fails if Path Is A File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0644))
		repo := fs.NewRepository(fs.Config{Path: file, MustExist: true})
		assert.Error(t, repo.Initialize(context.Background()))
	})

	t.Run("ReadOnly Tolerates Missing Directory", func(t *testing.T) {
		repo := fs.NewRepository(fs.Config{Path: filepath.Join(t.TempDir(), "nope"), ReadOnly: true})
		require.NoError(t, repo.Initialize(context.Background()))

		_, found, err := repo.Get(context.Background(), core.StorageKey)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	repo, dir := setupRepo(t)

	_, found, err := repo.Get(ctx, "thoughts")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "thoughts", []byte(`[{"id":"1"}]`)))
	assert.FileExists(t, filepath.Join(dir, "thoughts.json"))

	got, found, err := repo.Get(ctx, "thoughts")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, repo.Set(ctx, "thoughts", []byte(`[]`)))
	got, _, _ = repo.Get(ctx, "thoughts")
	assert.Equal(t, `[]`, string(got))
}

func TestExtension(t *testing.T) {
	repo, dir := setupRepo(t, func(c *fs.Config) { c.Extension = "yaml" })
	require.NoError(t, repo.Set(context.Background(), "thoughts", []byte("[]\n")))
	assert.FileExists(t, filepath.Join(dir, "thoughts.yaml"))
	assert.Equal(t, filepath.Join(dir, "thoughts.yaml"), repo.FilePath("thoughts"))
}

func TestInvalidKeys(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupRepo(t)
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, repo.Set(ctx, key, []byte("x")), "key %q", key)
		_, _, err := repo.Get(ctx, key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestReadOnlySet(t *testing.T) {
	repo, _ := setupRepo(t, func(c *fs.Config) { c.ReadOnly = true })
	err := repo.Set(context.Background(), "thoughts", []byte("[]"))
	assert.ErrorIs(t, err, core.ErrReadOnly)
}

func TestState(t *testing.T) {
	repo, dir := setupRepo(t)
	require.NoError(t, repo.Set(context.Background(), "thoughts", []byte("[]")))

	state, ok := repo.State().(fs.RepositoryState)
	require.True(t, ok)
	assert.Equal(t, dir, state.Path)
	assert.Equal(t, ".json", state.Extension)
	assert.NotNil(t, state.LastWrite)
	assert.False(t, state.WatcherActive)
	assert.Equal(t, "fs", repo.ComponentType())
}
