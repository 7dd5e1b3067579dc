package storage

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ErrImageTooLarge: kích thước khai báo trong header vượt MaxPixels.
// Kiểm tra trước khi decode vì file nén nhỏ vẫn có thể khai báo hàng tỉ pixel.
var ErrImageTooLarge = errors.New("image dimensions exceed the allowed pixel count")

type ImageProcessor struct {
	MaxEdge   int // px
	MaxPixels int // width * height
}

func NewImageProcessor(maxEdge, maxPixels int) *ImageProcessor {
	return &ImageProcessor{MaxEdge: maxEdge, MaxPixels: maxPixels}
}

// Normalize resize ảnh JPEG/PNG tại path (ghi đè) nếu cạnh dài hơn MaxEdge,
// từ chối ảnh vượt MaxPixels, giữ nguyên file không decode được. Trả về content type của file sau cùng.
func (p *ImageProcessor) Normalize(path string) (string, error) {
	contentType, err := DetectContentType(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	cfg, format, err := image.DecodeConfig(f)
	f.Close()
	if err != nil || (format != "jpeg" && format != "png") {
		// Không phải ảnh raster quen thuộc: upload nguyên bản
		return contentType, nil
	}
	if p.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(p.MaxPixels) {
		return "", fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	if cfg.Width <= p.MaxEdge && cfg.Height <= p.MaxEdge {
		return contentType, nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("cannot decode image: %w", err)
	}
	resized := imaging.Fit(img, p.MaxEdge, p.MaxEdge, imaging.Lanczos)

	imgFormat := imaging.JPEG
	if format == "png" {
		imgFormat = imaging.PNG
	}
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("rewrite image: %w", err)
	}
	defer out.Close()
	if err := imaging.Encode(out, resized, imgFormat, imaging.JPEGQuality(90)); err != nil {
		return "", fmt.Errorf("cannot encode image: %w", err)
	}
	return contentType, nil
}

// DetectContentType đoán MIME từ 512 byte đầu, fallback theo extension
func DetectContentType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	contentType := http.DetectContentType(buf[:n])
	if contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
			contentType = byExt
		}
	}
	return contentType, nil
}
