package user

import (
	"context"

	"library-catalog/internal/shared/auth"
)

// IdentityProvider xác thực email/password và cấp session token.
// Catalog chỉ dùng interface này, implementation có thể là local hoặc remote.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*Account, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// Verify trả về caller của session token còn hiệu lực
	Verify(ctx context.Context, token string) (*auth.Caller, error)

	// SignOut vô hiệu hoá token tới khi nó hết hạn
	SignOut(ctx context.Context, token string) error

	// DeleteAccount xoá account vừa tạo khi bước đăng ký sau đó thất bại
	DeleteAccount(ctx context.Context, accountID string) error
}
