package service

import (
	"context"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/auth"

	"github.com/xuri/excelize/v2"
)

// ServiceInterface - Định nghĩa business logic methods
type ServiceInterface interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	CreateBook(ctx context.Context, caller *auth.Caller, in model.BookInput, cover *model.CoverFile) (*model.Book, error)
	UpdateBook(ctx context.Context, caller *auth.Caller, id int64, in model.BookInput, cover *model.CoverFile) (*model.Book, error)
	DeleteBook(ctx context.Context, caller *auth.Caller, id int64) error
	DownloadCover(ctx context.Context, caller *auth.Caller, id int64) (string, error)
	ExportBooks(ctx context.Context) (*excelize.File, error)
}

// CoverService giữ cover_url của book khớp với nội dung object storage
type CoverService interface {
	UploadCover(ctx context.Context, file *model.CoverFile) (string, error)
	ReplaceCover(ctx context.Context, oldURL string, file *model.CoverFile) (string, error)
	ResolveDownloadTarget(ctx context.Context, caller *auth.Caller, coverURL string) (string, error)
	DiscardCover(ctx context.Context, coverURL string) error
}

// CoverNormalizer chuẩn hoá file ảnh tại chỗ, trả về content type.
// storage.ImageProcessor implement interface này.
type CoverNormalizer interface {
	Normalize(path string) (string, error)
}
