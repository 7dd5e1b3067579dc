package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonFilenameChars = regexp.MustCompile(`[^a-z0-9_-]+`)
	repeatUnderscore = regexp.MustCompile(`_+`)
	validExt         = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
)

// SanitizeFilename chuẩn hoá tên file upload thành (base, ext) an toàn để làm object key.
// "Bìa Sách (final).JPG" → ("bia_sach_final", ".jpg")
func SanitizeFilename(name string) (string, string) {
	// Browser trên Windows có thể gửi full path
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))

	ext := strings.ToLower(filepath.Ext(name))
	if !validExt.MatchString(ext) {
		ext = ""
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))

	base = strings.ToLower(RemoveDiacritics(base))
	base = nonFilenameChars.ReplaceAllString(base, "_")
	base = repeatUnderscore.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_-")

	if base == "" {
		base = "cover"
	}
	return base, ext
}

// BookSlug tạo path segment "<title-slug>-<id>" cho form routes.
func BookSlug(title string, id int64) string {
	slug := GenerateSlug(title)
	if slug == "" {
		return strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s-%d", slug, id)
}

// ParseSlugID lấy id ở cuối "<title>-<id>". Phần title chỉ để đọc, không được kiểm tra.
func ParseSlugID(slug string) (int64, error) {
	idPart := slug
	if i := strings.LastIndex(slug, "-"); i >= 0 {
		idPart = slug[i+1:]
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid book reference %q", slug)
	}
	return id, nil
}
