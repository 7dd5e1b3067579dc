package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/storage"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/auth"
	"library-catalog/internal/shared/utils"

	"github.com/rs/zerolog/log"
)

const (
	storageService = "object storage"
	coverKeyPrefix = "covers"
)

type CoverConfig struct {
	DefaultURL     string
	DownloadDir    string
	MaxUploadBytes int64 // 0 = không giới hạn
}

type coverService struct {
	store      storage.ObjectStore
	normalizer CoverNormalizer
	cfg        CoverConfig
	now        func() time.Time
	tempDir    string
}

func NewCoverService(store storage.ObjectStore, normalizer CoverNormalizer, cfg CoverConfig) CoverService {
	return newCoverService(store, normalizer, cfg)
}

func newCoverService(store storage.ObjectStore, normalizer CoverNormalizer, cfg CoverConfig) *coverService {
	return &coverService{
		store:      store,
		normalizer: normalizer,
		cfg:        cfg,
		now:        time.Now,
	}
}

// UploadCover upload file và trả về public URL.
// Không có file thì trả về default cover, không gọi storage.
func (s *coverService) UploadCover(ctx context.Context, file *model.CoverFile) (string, error) {
	if file == nil {
		return s.cfg.DefaultURL, nil
	}
	if err := s.checkSize(file.Size); err != nil {
		return "", err
	}

	key := s.coverKey(file.Filename)

	tmpPath, err := s.spool(file)
	if tmpPath != "" {
		// Temp file luôn bị xoá, kể cả khi upload lỗi
		defer func() {
			if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Warn().Err(rmErr).Str("path", tmpPath).Msg("failed to remove temp cover file")
			}
		}()
	}
	if err != nil {
		return "", err
	}

	contentType := file.ContentType
	if s.normalizer != nil {
		detected, err := s.normalizer.Normalize(tmpPath)
		if err != nil {
			return "", apperror.Validation(fmt.Errorf("cover image: %w", err))
		}
		contentType = detected
	}

	if err := s.store.Put(ctx, key, tmpPath, contentType); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cover upload failed")
		return "", apperror.External(storageService, "put", err)
	}

	url, err := s.store.URL(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("cover url lookup failed")
		return "", apperror.External(storageService, "url", err)
	}

	log.Info().Str("key", key).Msg("cover uploaded")
	return url, nil
}

// ReplaceCover xoá blob cũ rồi upload file mới.
// Upload lỗi sau khi đã xoá thì record mất cover cũ.
func (s *coverService) ReplaceCover(ctx context.Context, oldURL string, file *model.CoverFile) (string, error) {
	if file == nil {
		return oldURL, nil
	}
	if err := s.checkSize(file.Size); err != nil {
		return "", err
	}

	if err := s.DiscardCover(ctx, oldURL); err != nil {
		return "", err
	}
	return s.UploadCover(ctx, file)
}

// DiscardCover xoá blob mà coverURL trỏ tới.
// Default cover và URL không thuộc store được bỏ qua.
func (s *coverService) DiscardCover(ctx context.Context, coverURL string) error {
	if coverURL == "" || coverURL == s.cfg.DefaultURL {
		return nil
	}
	key, ok := s.store.KeyFromURL(coverURL)
	if !ok {
		log.Debug().Str("url", coverURL).Msg("cover url not managed by object store, skip delete")
		return nil
	}
	if err := s.store.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cover delete failed")
		return apperror.External(storageService, "delete", err)
	}
	return nil
}

// ResolveDownloadTarget tải blob về <DownloadDir>/<user id>/<filename>
func (s *coverService) ResolveDownloadTarget(ctx context.Context, caller *auth.Caller, coverURL string) (string, error) {
	if !caller.HasSession() {
		return "", model.ErrSessionMissing
	}

	key, ok := s.store.KeyFromURL(coverURL)
	if !ok {
		return "", model.ErrNoCover
	}

	userDir, _ := utils.SanitizeFilename(caller.UserID)
	dir := filepath.Join(s.cfg.DownloadDir, userDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	target := filepath.Join(dir, path.Base(key))
	if err := s.store.Get(ctx, key, target); err != nil {
		log.Error().Err(err).Str("key", key).Str("user_id", caller.UserID).Msg("cover download failed")
		return "", apperror.External(storageService, "get", err)
	}
	return target, nil
}

// coverKey: covers/<sanitized-base>_<unix-seconds><ext>
func (s *coverService) coverKey(filename string) string {
	base, ext := utils.SanitizeFilename(filename)
	return fmt.Sprintf("%s/%s_%d%s", coverKeyPrefix, base, s.now().Unix(), ext)
}

func (s *coverService) checkSize(size int64) error {
	if s.cfg.MaxUploadBytes > 0 && size > s.cfg.MaxUploadBytes {
		return model.ErrCoverTooLarge
	}
	return nil
}

// spool copy upload ra temp file. Trả về path kể cả khi lỗi để caller dọn.
func (s *coverService) spool(file *model.CoverFile) (string, error) {
	if file.Open == nil {
		return "", apperror.Validation(fmt.Errorf("cover file is not readable"))
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open cover upload: %w", err)
	}
	defer src.Close()

	_, ext := utils.SanitizeFilename(file.Filename)
	tmp, err := os.CreateTemp(s.tempDir, "cover-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer tmp.Close()

	var reader io.Reader = src
	if s.cfg.MaxUploadBytes > 0 {
		reader = io.LimitReader(src, s.cfg.MaxUploadBytes+1)
	}
	n, err := io.Copy(tmp, reader)
	if err != nil {
		return tmp.Name(), fmt.Errorf("spool cover upload: %w", err)
	}
	if err := s.checkSize(n); err != nil {
		return tmp.Name(), err
	}
	return tmp.Name(), nil
}
