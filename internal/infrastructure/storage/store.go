package storage

import "context"

// ObjectStore là contract tối thiểu catalog cần từ object storage.
// Blob được định danh bằng key dạng path (vd: covers/dune_1700000000.jpg).
type ObjectStore interface {
	// Put upload file local tại localPath lên key.
	Put(ctx context.Context, key, localPath, contentType string) error

	// URL trả về public URL của key, kèm download token nếu store yêu cầu.
	URL(ctx context.Context, key string) (string, error)

	// Get tải blob về localPath (ghi đè nếu đã tồn tại).
	Get(ctx context.Context, key, localPath string) error

	// Delete xoá blob. Key không tồn tại không phải là lỗi.
	Delete(ctx context.Context, key string) error

	// KeyFromURL lấy lại key từ URL do chính store này sinh ra.
	// ok = false khi URL không thuộc store (vd: default cover).
	KeyFromURL(rawURL string) (key string, ok bool)
}
