package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/thoughts/pkg/adapters/sqlite"
	"github.com/aretw0/thoughts/pkg/core"
)

func openRepo(t *testing.T, dir string) *sqlite.Repository {
	t.Helper()
	repo := sqlite.NewRepository(sqlite.Config{Dir: dir})
	require.NoError(t, repo.Initialize(context.Background()))
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t, t.TempDir())

	_, found, err := repo.Get(ctx, core.StorageKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, core.StorageKey, []byte(`[{"id":"1"}]`)))
	require.NoError(t, repo.Set(ctx, core.StorageKey, []byte(`[]`)))

	got, found, err := repo.Get(ctx, core.StorageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(got))
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")

	first := sqlite.NewRepository(sqlite.Config{Dir: dir})
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.Set(ctx, "thoughts", []byte("payload")))
	require.NoError(t, first.Close())

	second := openRepo(t, dir)
	got, found, err := second.Get(ctx, "thoughts")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "payload", string(got))
	assert.Equal(t, filepath.Join(dir, sqlite.DefaultFilename), second.Path())
}

func TestUninitialized(t *testing.T) {
	repo := sqlite.NewRepository(sqlite.Config{Dir: t.TempDir()})
	_, _, err := repo.Get(context.Background(), "thoughts")
	assert.Error(t, err)
	assert.NoError(t, repo.Close())
}

func TestMustExist(t *testing.T) {
	repo := sqlite.NewRepository(sqlite.Config{Dir: filepath.Join(t.TempDir(), "missing"), MustExist: true})
	assert.Error(t, repo.Initialize(context.Background()))
}

func TestReadOnly(t *testing.T) {
	ctx := context.Background()

	t.Run("missing database is not created", func(t *testing.T) {
		dir := t.TempDir()
		repo := sqlite.NewRepository(sqlite.Config{Dir: dir, ReadOnly: true})
		require.NoError(t, repo.Initialize(ctx))
		t.Cleanup(func() { repo.Close() })

		_, found, err := repo.Get(ctx, "thoughts")
		require.NoError(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, repo.Set(ctx, "thoughts", []byte("x")), core.ErrReadOnly)
		assert.NoFileExists(t, filepath.Join(dir, sqlite.DefaultFilename))
	})

	t.Run("missing directory is not created", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")
		repo := sqlite.NewRepository(sqlite.Config{Dir: dir, ReadOnly: true})
		require.NoError(t, repo.Initialize(ctx))

		_, found, err := repo.Get(ctx, "thoughts")
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoDirExists(t, dir)
	})

	t.Run("existing database is readable", func(t *testing.T) {
		dir := t.TempDir()
		writer := sqlite.NewRepository(sqlite.Config{Dir: dir})
		require.NoError(t, writer.Initialize(ctx))
		require.NoError(t, writer.Set(ctx, "thoughts", []byte("payload")))
		require.NoError(t, writer.Close())

		repo := sqlite.NewRepository(sqlite.Config{Dir: dir, ReadOnly: true})
		require.NoError(t, repo.Initialize(ctx))
		t.Cleanup(func() { repo.Close() })

		got, found, err := repo.Get(ctx, "thoughts")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "payload", string(got))
		assert.ErrorIs(t, repo.Set(ctx, "thoughts", []byte("x")), core.ErrReadOnly)
	})
}

func TestState(t *testing.T) {
	repo := openRepo(t, t.TempDir())
	require.NoError(t, repo.Set(context.Background(), "thoughts", []byte("[]")))

	state := repo.State().(sqlite.RepositoryState)
	assert.True(t, state.Open)
	assert.NotNil(t, state.LastWrite)
	assert.Equal(t, "sqlite", repo.ComponentType())
}
