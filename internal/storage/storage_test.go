package storage_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/groenwerk/offerte-api/internal/config"
	"github.com/groenwerk/offerte-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage_UploadDownloadDelete(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("offerte bijlage inhoud")

	storagePath, size, err := s.Upload(ctx, "offerte.pdf", "application/pdf", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)
	assert.True(t, strings.HasSuffix(storagePath, ".pdf"))

	reader, err := s.Download(ctx, storagePath)
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, s.Delete(ctx, storagePath))

	_, err = s.Download(ctx, storagePath)
	assert.Error(t, err)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background(), "aa/bb/missing.pdf"))
}

func TestLocalStorage_UniquePaths(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	path1, _, err := s.Upload(ctx, "foto.jpg", "image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)
	path2, _, err := s.Upload(ctx, "foto.jpg", "image/jpeg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, path1, path2)
}

func TestNewStorage_Modes(t *testing.T) {
	logger := zap.NewNop()

	s, err := storage.NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "azure"}, logger)
	assert.Error(t, err, "azure mode requires a connection string")

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, logger)
	assert.Error(t, err)
}
