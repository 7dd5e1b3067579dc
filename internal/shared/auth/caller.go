package auth

import "context"

// Caller là identity đã xác thực của request hiện tại.
// Được tạo bởi middleware (session token hoặc api key) và truyền tường minh
// xuống service, không đọc từ global state.
type Caller struct {
	UserID       string
	Email        string
	SessionToken string // rỗng khi caller đến từ api key
}

// HasSession cho biết caller có session token hợp lệ từ identity provider.
func (c *Caller) HasSession() bool {
	return c != nil && c.SessionToken != ""
}

type callerKey struct{}

// WithCaller gắn caller vào request context.
func WithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// FromContext lấy caller, nil nếu request chưa xác thực.
func FromContext(ctx context.Context) *Caller {
	caller, _ := ctx.Value(callerKey{}).(*Caller)
	return caller
}
