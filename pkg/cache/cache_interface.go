package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho cache layer
// Cho phép swap implementation (Redis, In-memory trong test)
type Cache interface {
	// Set lưu value với TTL. value được encode JSON
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Exists kiểm tra key còn tồn tại (chưa hết hạn)
	Exists(ctx context.Context, key string) (bool, error)

	// Delete xóa các keys khỏi cache
	Delete(ctx context.Context, keys ...string) error

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}
