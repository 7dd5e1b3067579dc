package apikey

import "time"

// ApiKey là key metering của một email, tạo một lần lúc đăng ký
type ApiKey struct {
	ID            int64     `json:"id_api" db:"id_api"`
	Email         string    `json:"email" db:"email"`
	Key           string    `json:"api_key" db:"api_key"`
	RequestsCount int64     `json:"requests_count" db:"requests_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// KeyBytes: 32 random bytes → 64 ký tự hex
const KeyBytes = 32
