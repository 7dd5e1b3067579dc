package user

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - form đăng ký, password phải nhập lại hai lần
type RegisterRequest struct {
	Email          string `json:"email" form:"email"`
	Password       string `json:"password" form:"password"`
	RepeatPassword string `json:"repeat_password" form:"repeat_password"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(MinPasswordLength, 0).Error("password must be at least 6 characters"),
			validation.By(passwordFitsBcrypt),
		),
		validation.Field(&r.RepeatPassword,
			validation.Required.Error("please repeat the password"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterResponse trả về account và api key (chỉ hiển thị một lần)
type RegisterResponse struct {
	Account *Account `json:"account"`
	APIKey  string   `json:"api_key"`
}

const (
	MinPasswordLength = 6
	// bcrypt chỉ nhận tối đa 72 byte, tính theo byte UTF-8 chứ không theo ký tự
	MaxPasswordBytes = 72
)

func passwordFitsBcrypt(value interface{}) error {
	pw, _ := value.(string)
	if len(pw) > MaxPasswordBytes {
		return errors.New("password must be at most 72 bytes")
	}
	return nil
}
