package service

import (
	"context"
	"fmt"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/auth"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// BookService ghép repository với cover lifecycle
type BookService struct {
	repo   repository.RepositoryInterface
	covers CoverService
}

func NewBookService(repo repository.RepositoryInterface, covers CoverService) ServiceInterface {
	return &BookService{
		repo:   repo,
		covers: covers,
	}
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.List(ctx)
}

func (s *BookService) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	if id <= 0 {
		return nil, model.ErrInvalidBookID
	}
	return s.repo.GetByID(ctx, id)
}

// CreateBook: upload cover (hoặc default) rồi insert
func (s *BookService) CreateBook(
	ctx context.Context,
	caller *auth.Caller,
	in model.BookInput,
	cover *model.CoverFile,
) (*model.Book, error) {
	if caller == nil {
		return nil, model.ErrSessionMissing
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	coverURL, err := s.covers.UploadCover(ctx, cover)
	if err != nil {
		return nil, err
	}

	book, err := s.repo.Create(ctx, in.ToFields(coverURL))
	if err != nil {
		s.discardOrphan(ctx, coverURL)
		return nil, err
	}

	log.Info().Int64("book_id", book.ID).Str("email", caller.Email).Msg("book created")
	return book, nil
}

// UpdateBook ghi đè toàn bộ field. cover nil thì giữ cover hiện tại.
func (s *BookService) UpdateBook(
	ctx context.Context,
	caller *auth.Caller,
	id int64,
	in model.BookInput,
	cover *model.CoverFile,
) (*model.Book, error) {
	if caller == nil {
		return nil, model.ErrSessionMissing
	}
	if id <= 0 {
		return nil, model.ErrInvalidBookID
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	coverURL, err := s.covers.ReplaceCover(ctx, existing.CoverURL, cover)
	if err != nil {
		return nil, err
	}
	if coverURL == "" {
		coverURL = s.defaultCover(ctx)
	}

	book, err := s.repo.Update(ctx, id, in.ToFields(coverURL))
	if err != nil {
		if cover != nil {
			s.discardOrphan(ctx, coverURL)
		}
		return nil, err
	}

	log.Info().Int64("book_id", id).Str("email", caller.Email).Msg("book updated")
	return book, nil
}

// DeleteBook xoá record. Blob của cover vẫn giữ nguyên trên storage.
func (s *BookService) DeleteBook(ctx context.Context, caller *auth.Caller, id int64) error {
	if caller == nil {
		return model.ErrSessionMissing
	}
	if id <= 0 {
		return model.ErrInvalidBookID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Int64("book_id", id).Str("email", caller.Email).Msg("book deleted")
	return nil
}

// DownloadCover tải cover của book về thư mục riêng của caller
func (s *BookService) DownloadCover(ctx context.Context, caller *auth.Caller, id int64) (string, error) {
	if !caller.HasSession() {
		return "", model.ErrSessionMissing
	}
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return "", err
	}
	return s.covers.ResolveDownloadTarget(ctx, caller, book.CoverURL)
}

// ExportBooks xuất toàn bộ catalog ra file Excel
func (s *BookService) ExportBooks(ctx context.Context) (*excelize.File, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func (s *BookService) defaultCover(ctx context.Context) string {
	url, _ := s.covers.UploadCover(ctx, nil)
	return url
}

// discardOrphan dọn blob vừa upload khi ghi DB thất bại
func (s *BookService) discardOrphan(ctx context.Context, coverURL string) {
	if err := s.covers.DiscardCover(ctx, coverURL); err != nil {
		log.Warn().Err(err).Str("url", coverURL).Msg("failed to remove orphaned cover")
	}
}

const exportSheet = "Books"

var exportHeaders = []string{
	"ID",
	"Title",
	"Author",
	"Publication Year",
	"Main Genre",
	"Description",
	"Cover URL",
	"Created At",
}

func buildBooksExcelFile(books []model.Book) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename default sheet
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	// Row 1: Header
	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(exportSheet, "A1", lastCell, headerStyle)
	}

	// Data rows, bắt đầu từ row 2
	for i, b := range books {
		values := []interface{}{
			b.ID,
			b.Title,
			b.Author,
			b.PublicationYear,
			b.MainGenre,
			b.Description,
			b.CoverURL,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}
