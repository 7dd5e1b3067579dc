package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"library-catalog/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// tokenMetaKey lưu download token trong user metadata của object
const tokenMetaKey = "Download-Token"

// MinIOStorage implement ObjectStore trên MinIO / S3-compatible store
type MinIOStorage struct {
	client  *minio.Client
	bucket  string
	baseURL *url.URL // public base, URL = base/bucket/key?token=...
}

var _ ObjectStore = (*MinIOStorage)(nil)

// NewMinIOStorage khởi tạo MinIO client, tạo bucket public-read nếu chưa có
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s, err := newMinIOStorage(client, cfg)
	if err != nil {
		return nil, err
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func newMinIOStorage(client *minio.Client, cfg config.MinIOConfig) (*MinIOStorage, error) {
	base := cfg.PublicURL
	if base == "" {
		base = client.EndpointURL().String()
	}
	baseURL, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid public url %q: %w", base, err)
	}

	return &MinIOStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

func (s *MinIOStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	// Anonymous GetObject để cover URL mở được trực tiếp từ browser
	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, s.bucket)
	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}

// Put upload file từ disk và gắn download token mới vào metadata
func (s *MinIOStorage) Put(ctx context.Context, key, localPath, contentType string) error {
	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{tokenMetaKey: uuid.NewString()},
	})
	if err != nil {
		return fmt.Errorf("failed to upload to minio: %w", err)
	}
	return nil
}

// URL đọc download token của object rồi build public URL
func (s *MinIOStorage) URL(ctx context.Context, key string) (string, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to stat object: %w", err)
	}

	var token string
	for k, v := range info.UserMetadata {
		if strings.EqualFold(k, tokenMetaKey) {
			token = v
			break
		}
	}
	return s.objectURL(key, token), nil
}

func (s *MinIOStorage) objectURL(key, token string) string {
	u := *s.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + s.bucket + "/" + key
	u.RawPath = ""
	if token != "" {
		u.RawQuery = url.Values{"token": {token}}.Encode()
	}
	return u.String()
}

// KeyFromURL đảo ngược objectURL: bỏ base + bucket, bỏ query
func (s *MinIOStorage) KeyFromURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if !strings.EqualFold(u.Host, s.baseURL.Host) {
		return "", false
	}

	prefix := strings.TrimRight(s.baseURL.Path, "/") + "/" + s.bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(u.Path, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

// Get tải object về file local
func (s *MinIOStorage) Get(ctx context.Context, key, localPath string) error {
	if err := s.client.FGetObject(ctx, s.bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("failed to get object: %w", err)
	}
	return nil
}

// Delete xóa một file khỏi MinIO
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// HealthCheck dùng cho /health
func (s *MinIOStorage) HealthCheck(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("minio unreachable: %w", err)
	}
	return nil
}
