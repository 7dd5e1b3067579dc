package repository

import (
	"context"

	"library-catalog/internal/domains/book/model"
)

// RepositoryInterface - Định nghĩa data access methods cho bảng book
type RepositoryInterface interface {
	Create(ctx context.Context, fields model.BookFields) (*model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, id int64, fields model.BookFields) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}
