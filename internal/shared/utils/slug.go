package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

	// đ/Đ không tách được bằng NFD nên map tay
	strokeLetters = strings.NewReplacer("đ", "d", "Đ", "D")
)

// GenerateSlug: "Nguyễn Nhật Ánh" → "nguyen-nhat-anh"
func GenerateSlug(input string) string {
	lower := strings.ToLower(RemoveDiacritics(input))
	return strings.Trim(nonSlugChars.ReplaceAllString(lower, "-"), "-")
}

// RemoveDiacritics bỏ dấu (tất cả các tone của "a" => "a").
// Ký tự không có dạng ASCII tương ứng được giữ nguyên.
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strokeLetters.Replace(input))
	if err != nil {
		return input
	}
	return out
}
