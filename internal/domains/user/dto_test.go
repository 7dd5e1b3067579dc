package user

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"ascii at limit", strings.Repeat("a", 72), false},
		{"ascii over limit", strings.Repeat("a", 73), true},
		{"too short", "abc", true},
		// 24 ký tự nhưng 72 byte
		{"multibyte at byte limit", strings.Repeat("ế", 24), false},
		// 40 ký tự, 120 byte
		{"multibyte over byte limit", strings.Repeat("ế", 40), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RegisterRequest{
				Email:          "reader@example.com",
				Password:       tt.password,
				RepeatPassword: tt.password,
			}
			err := req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, "password")
		})
	}
}
