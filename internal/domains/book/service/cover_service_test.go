package service

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/storage"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/auth"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDefaultCover = "/static/img/default-cover.png"

var fixedNow = time.Unix(1700000000, 0)

func setupCoverService(t *testing.T, store *memStore) *coverService {
	t.Helper()
	svc := newCoverService(store, nil, CoverConfig{
		DefaultURL:     testDefaultCover,
		DownloadDir:    t.TempDir(),
		MaxUploadBytes: 1 << 10,
	})
	svc.now = func() time.Time { return fixedNow }
	svc.tempDir = t.TempDir()
	return svc
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files left behind")
}

func TestCoverService_UploadCover_NoFile(t *testing.T) {
	store := &mockStore{}
	svc := newCoverService(store, nil, CoverConfig{DefaultURL: testDefaultCover})

	url, err := svc.UploadCover(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, testDefaultCover, url)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "URL", mock.Anything, mock.Anything)
}

func TestCoverService_UploadCover(t *testing.T) {
	store := newMemStore()
	svc := setupCoverService(t, store)

	url, err := svc.UploadCover(context.Background(), newCoverFile("Bìa Sách (final).JPG", "jpeg-bytes"))
	require.NoError(t, err)

	key := "covers/bia_sach_final_1700000000.jpg"
	assert.Equal(t, memStoreBase+key+"?token=tok-1", url)
	assert.Equal(t, []byte("jpeg-bytes"), store.blobs[key])
	assert.Equal(t, "image/jpeg", store.types[key])
	assertDirEmpty(t, svc.tempDir)
}

func TestCoverService_UploadCover_StorageFailure(t *testing.T) {
	store := &mockStore{}
	store.On("Put", mock.Anything, "covers/dune_1700000000.png", mock.Anything, "image/jpeg").
		Return(errors.New("connection refused"))

	svc := newCoverService(store, nil, CoverConfig{DefaultURL: testDefaultCover})
	svc.now = func() time.Time { return fixedNow }
	svc.tempDir = t.TempDir()

	_, err := svc.UploadCover(context.Background(), newCoverFile("dune.png", "png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrExternalService)

	var extErr *apperror.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "put", extErr.Op)

	assertDirEmpty(t, svc.tempDir)
	store.AssertExpectations(t)
}

func TestCoverService_UploadCover_TooLarge(t *testing.T) {
	store := newMemStore()
	svc := setupCoverService(t, store)

	t.Run("declared size", func(t *testing.T) {
		file := newCoverFile("big.jpg", "x")
		file.Size = 4096
		_, err := svc.UploadCover(context.Background(), file)
		assert.ErrorIs(t, err, model.ErrCoverTooLarge)
	})

	t.Run("actual size", func(t *testing.T) {
		file := newCoverFile("big.jpg", string(make([]byte, 2048)))
		file.Size = 0
		_, err := svc.UploadCover(context.Background(), file)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	assert.Empty(t, store.blobs)
	assertDirEmpty(t, svc.tempDir)
}

func TestCoverService_UploadCover_TooManyPixels(t *testing.T) {
	store := newMemStore()
	svc := newCoverService(store, storage.NewImageProcessor(100, 1_000_000), CoverConfig{
		DefaultURL:     testDefaultCover,
		MaxUploadBytes: 1 << 20,
	})
	svc.now = func() time.Time { return fixedNow }
	svc.tempDir = t.TempDir()

	// file nhỏ, header khai báo 1.2M pixel
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(1200, 1000, color.NRGBA{A: 255}), imaging.PNG))
	require.Less(t, buf.Len(), 64<<10)

	_, err := svc.UploadCover(context.Background(), newCoverFile("huge.png", buf.String()))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.ErrorIs(t, err, storage.ErrImageTooLarge)

	assert.Empty(t, store.blobs)
	assertDirEmpty(t, svc.tempDir)
}

func TestCoverService_ReplaceCover_NoFile(t *testing.T) {
	store := &mockStore{}
	svc := newCoverService(store, nil, CoverConfig{DefaultURL: testDefaultCover})

	old := memStoreBase + "covers/old_1.jpg?token=abc"
	url, err := svc.ReplaceCover(context.Background(), old, nil)
	require.NoError(t, err)
	assert.Equal(t, old, url)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCoverService_ReplaceCover(t *testing.T) {
	store := newMemStore()
	svc := setupCoverService(t, store)
	ctx := context.Background()

	svc.now = func() time.Time { return fixedNow.Add(-time.Hour) }
	oldURL, err := svc.UploadCover(ctx, newCoverFile("cover.jpg", "old"))
	require.NoError(t, err)
	oldKey, _ := store.KeyFromURL(oldURL)
	require.Contains(t, store.blobs, oldKey)

	svc.now = func() time.Time { return fixedNow }
	newURL, err := svc.ReplaceCover(ctx, oldURL, newCoverFile("cover.jpg", "new"))
	require.NoError(t, err)

	newKey, ok := store.KeyFromURL(newURL)
	require.True(t, ok)
	assert.NotEqual(t, oldURL, newURL)
	assert.NotEqual(t, oldKey, newKey)
	assert.NotContains(t, store.blobs, oldKey)
	assert.Equal(t, []byte("new"), store.blobs[newKey])
}

func TestCoverService_ReplaceCover_DefaultCover(t *testing.T) {
	store := newMemStore()
	svc := setupCoverService(t, store)

	url, err := svc.ReplaceCover(context.Background(), testDefaultCover, newCoverFile("a.png", "a"))
	require.NoError(t, err)
	assert.Equal(t, memStoreBase+"covers/a_1700000000.png?token=tok-1", url)
	assert.Len(t, store.blobs, 1)
}

func TestCoverService_ReplaceCover_DeleteFailure(t *testing.T) {
	store := &mockStore{}
	old := memStoreBase + "covers/old_1.jpg?token=abc"
	store.On("KeyFromURL", old).Return("covers/old_1.jpg", true)
	store.On("Delete", mock.Anything, "covers/old_1.jpg").Return(errors.New("timeout"))

	svc := newCoverService(store, nil, CoverConfig{DefaultURL: testDefaultCover})

	_, err := svc.ReplaceCover(context.Background(), old, newCoverFile("new.jpg", "new"))
	assert.ErrorIs(t, err, apperror.ErrExternalService)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestCoverService_ReplaceCover_TooLargeKeepsOldBlob(t *testing.T) {
	store := &mockStore{}
	svc := newCoverService(store, nil, CoverConfig{DefaultURL: testDefaultCover, MaxUploadBytes: 10})

	file := newCoverFile("new.jpg", "new")
	file.Size = 100
	_, err := svc.ReplaceCover(context.Background(), memStoreBase+"covers/old_1.jpg", file)
	assert.ErrorIs(t, err, model.ErrCoverTooLarge)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCoverService_ResolveDownloadTarget(t *testing.T) {
	store := newMemStore()
	svc := setupCoverService(t, store)
	ctx := context.Background()

	coverURL, err := svc.UploadCover(ctx, newCoverFile("dune.jpg", "spice"))
	require.NoError(t, err)

	t.Run("no session", func(t *testing.T) {
		_, err := svc.ResolveDownloadTarget(ctx, nil, coverURL)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)

		_, err = svc.ResolveDownloadTarget(ctx, &auth.Caller{UserID: "u1"}, coverURL)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("success", func(t *testing.T) {
		caller := &auth.Caller{UserID: "8c6f3a52-1b2e-4c61-9d7e-2f1a9b3c4d5e", SessionToken: "tok"}
		target, err := svc.ResolveDownloadTarget(ctx, caller, coverURL)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(svc.cfg.DownloadDir, caller.UserID, "dune_1700000000.jpg"), target)
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "spice", string(data))
	})

	t.Run("default cover", func(t *testing.T) {
		caller := &auth.Caller{UserID: "u1", SessionToken: "tok"}
		_, err := svc.ResolveDownloadTarget(ctx, caller, testDefaultCover)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
