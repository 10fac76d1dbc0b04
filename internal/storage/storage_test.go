package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/crestline-remodeling/proposal-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSignaturePath(t *testing.T) {
	path := SignaturePath("8b1f9c2e", "client")
	assert.Equal(t, "contracts/8b1f9c2e/client.png", path)

	path = SignaturePath("8b1f9c2e", "contractor")
	assert.Equal(t, "contracts/8b1f9c2e/contractor.png", path)
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)

	t.Run("save and open round trip", func(t *testing.T) {
		payload := []byte("png data")
		require.NoError(t, store.Save(ctx, "contracts/abc/client.png", "image/png", bytes.NewReader(payload)))

		rc, err := store.Open(ctx, "contracts/abc/client.png")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("save overwrites existing file", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contracts/abc/client.png", "image/png", bytes.NewReader([]byte("v2"))))

		rc, err := store.Open(ctx, "contracts/abc/client.png")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), data)
	})

	t.Run("open missing file", func(t *testing.T) {
		_, err := store.Open(ctx, "contracts/missing/client.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("delete removes the file", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "contracts/abc/client.png"))

		_, err := store.Open(ctx, "contracts/abc/client.png")
		require.Error(t, err)
	})

	t.Run("deleting a missing file is not an error", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "contracts/never/was.png"))
	})
}

func TestNewStorage(t *testing.T) {
	logger := zap.NewNop()

	t.Run("local mode", func(t *testing.T) {
		store, err := NewStorage(&config.StorageConfig{
			Mode:          "local",
			LocalBasePath: t.TempDir(),
		}, logger)
		require.NoError(t, err)
		assert.IsType(t, &LocalStorage{}, store)
	})

	t.Run("cloud mode requires connection string", func(t *testing.T) {
		_, err := NewStorage(&config.StorageConfig{Mode: "cloud"}, logger)
		require.Error(t, err)
	})

	t.Run("unsupported mode", func(t *testing.T) {
		_, err := NewStorage(&config.StorageConfig{Mode: "ftp"}, logger)
		require.Error(t, err)
	})
}
