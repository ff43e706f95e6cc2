package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arkiv/internal/config"
)

func TestLocalPutGetRoundtrip(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	body := "hello archive"

	info, err := store.Put(ctx, "snapshots/test.json", strings.NewReader(body), PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
	})
	require.NoError(t, err)
	assert.Equal(t, "snapshots/test.json", info.Key)
	assert.Equal(t, int64(len(body)), info.Size)
	assert.Equal(t, "application/json", info.ContentType)

	rc, got, err := store.Get(ctx, "snapshots/test.json")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.Equal(t, int64(len(body)), got.Size)
	assert.Equal(t, "application/json", got.ContentType)
}

func TestLocalGetMissing(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "nope.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLocalDelete(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.Put(ctx, "labels/a.pdf", strings.NewReader("%PDF"), PutObjectOptions{Size: 4})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "labels/a.pdf"))

	err = store.Delete(ctx, "labels/a.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLocalRejectsTraversal(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{"../escape.txt", "a/../../escape.txt", ""} {
		_, err := store.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{Size: 1})
		assert.Error(t, err, "key %q should be rejected", key)
	}
}

func TestLocalPresignGet(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.Put(ctx, "snapshots/x.json", strings.NewReader("{}"), PutObjectOptions{Size: 2})
	require.NoError(t, err)

	u, err := store.PresignGet(ctx, "snapshots/x.json", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "file://"), "got %q", u)
	assert.Contains(t, u, filepath.ToSlash(filepath.Join("snapshots", "x.json")))

	_, err = store.PresignGet(ctx, "snapshots/missing.json", 0)
	require.Error(t, err)
}

func TestNewSelectsBackend(t *testing.T) {
	store, err := New(config.StorageConfig{Backend: config.StorageNone})
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = New(config.StorageConfig{Backend: config.StorageLocal, LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = New(config.StorageConfig{Backend: "ftp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage backend")
}
