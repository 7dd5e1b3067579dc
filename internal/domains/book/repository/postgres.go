package repository

import (
	"context"
	"errors"
	"fmt"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/apperror"
	"library-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
)

const bookColumns = `id, COALESCE(cover_url, ''), title, author, publication_year, main_genre, description, created_at`

// postgresRepository - Raw SQL, chạy trên pool hoặc trong transaction
type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository - Constructor. db là *pgxpool.Pool hoặc pgx.Tx
func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{db: db}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.CoverURL, &b.Title, &b.Author,
		&b.PublicationYear, &b.MainGenre, &b.Description, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create - INSERT, id và created_at do DB gán
func (r *postgresRepository) Create(ctx context.Context, fields model.BookFields) (*model.Book, error) {
	if err := fields.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	query := `
		INSERT INTO book (cover_url, title, author, publication_year, main_genre, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookColumns

	book, err := scanBook(r.db.QueryRow(ctx, query,
		nullIfEmpty(fields.CoverURL), fields.Title, fields.Author,
		fields.PublicationYear, fields.MainGenre, fields.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM book WHERE id = $1`

	book, err := scanBook(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

// List - toàn bộ bảng, cũ nhất trước, không phân trang
func (r *postgresRepository) List(ctx context.Context) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM book ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

// Update - ghi đè toàn bộ mutable fields (kể cả cover_url)
func (r *postgresRepository) Update(ctx context.Context, id int64, fields model.BookFields) (*model.Book, error) {
	if err := fields.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	query := `
		UPDATE book
		SET cover_url = $2, title = $3, author = $4,
		    publication_year = $5, main_genre = $6, description = $7
		WHERE id = $1
		RETURNING ` + bookColumns

	book, err := scanBook(r.db.QueryRow(ctx, query, id,
		nullIfEmpty(fields.CoverURL), fields.Title, fields.Author,
		fields.PublicationYear, fields.MainGenre, fields.Description,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return book, nil
}

// Delete - hard delete, không đụng tới object storage
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM book WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
