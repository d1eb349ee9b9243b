package storage_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/storage"
	"go.uber.org/zap"
)

func TestStorageInterfaceCompliance(t *testing.T) {
	var _ storage.Storage = (*storage.LocalStorage)(nil)
	var _ storage.Storage = (*storage.AzureBlobStorage)(nil)
}

func TestNewLocalStorage_CreatesDirectory(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), "archive")

	ls, err := storage.NewLocalStorage(basePath)
	require.NoError(t, err)
	assert.NotNil(t, ls)

	info, err := os.Stat(basePath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStorage_Modes(t *testing.T) {
	s, err := storage.NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, s)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "cloud"}, zap.NewNop())
	assert.Error(t, err)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}

func TestLocalStorage_PutGet(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	size, err := ls.Put(ctx, "a/b/c.json", "application/json", bytes.NewReader([]byte(`{"x":1}`)))
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)

	rc, err := ls.Get(ctx, "a/b/c.json")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(data))

	_, err = ls.Get(ctx, "a/b/missing.json")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestLocalStorage_RejectsBadKeys(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "/etc/passwd", "../escape.json", "a//b", "a/./b"} {
		_, err := ls.Put(context.Background(), key, "text/plain", bytes.NewReader(nil))
		assert.Error(t, err, key)
	}
}

func TestArchiver_Archive(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	sentAt := time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)
	sub := &domain.Submission{
		ID:             uuid.New(),
		Status:         domain.StatusApproved,
		Category:       "Bardeaux",
		SendStatus:     domain.SendStatusSent,
		RecipientEmail: "client@example.ca",
		SentAt:         &sentAt,
	}

	key, err := storage.NewArchiver(ls).Archive(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, "submissions/"+sub.ID.String()+"/sent-20240502T143000Z.json", key)

	rc, err := ls.Get(ctx, key)
	require.NoError(t, err)
	defer rc.Close()

	var got domain.SubmissionDTO
	require.NoError(t, json.NewDecoder(rc).Decode(&got))
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, "client@example.ca", got.RecipientEmail)
	assert.Equal(t, domain.SendStatusSent, got.SendStatus)
}
