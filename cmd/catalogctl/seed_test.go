package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book/model"
)

type seedRepo struct {
	books     []model.Book
	failAfter int
}

func (r *seedRepo) Create(ctx context.Context, f model.BookFields) (*model.Book, error) {
	if r.failAfter > 0 && len(r.books) == r.failAfter {
		return nil, errors.New("boom")
	}
	b := model.Book{
		ID:              int64(len(r.books) + 1),
		CoverURL:        f.CoverURL,
		Title:           f.Title,
		Author:          f.Author,
		PublicationYear: f.PublicationYear,
		MainGenre:       f.MainGenre,
		Description:     f.Description,
	}
	r.books = append(r.books, b)
	return &b, nil
}

func (r *seedRepo) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return nil, model.ErrBookNotFound
}

func (r *seedRepo) List(ctx context.Context) ([]model.Book, error) {
	return r.books, nil
}

func (r *seedRepo) Update(ctx context.Context, id int64, f model.BookFields) (*model.Book, error) {
	return nil, model.ErrBookNotFound
}

func (r *seedRepo) Delete(ctx context.Context, id int64) error {
	return model.ErrBookNotFound
}

func TestSeedFields_AllValid(t *testing.T) {
	fields := seedFields("/static/default.png")
	require.Len(t, fields, 10)

	for _, f := range fields {
		assert.NoError(t, f.Validate(), f.Title)
		assert.Equal(t, "/static/default.png", f.CoverURL)
	}
	assert.Equal(t, "Description of Book 7", fields[6].Description)
	assert.Equal(t, "Historical Fiction", fields[6].MainGenre)
	assert.Equal(t, 2016, fields[6].PublicationYear)
}

func TestSeedBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("empty catalog", func(t *testing.T) {
		repo := &seedRepo{}
		n, err := seedBooks(ctx, repo, "/default.png")
		require.NoError(t, err)
		assert.Equal(t, 10, n)
		assert.Equal(t, "Book 1", repo.books[0].Title)
		assert.Equal(t, "Book 10", repo.books[9].Title)
	})

	t.Run("non-empty catalog is left alone", func(t *testing.T) {
		repo := &seedRepo{books: []model.Book{{ID: 1, Title: "Existing"}}}
		n, err := seedBooks(ctx, repo, "/default.png")
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Len(t, repo.books, 1)
	})

	t.Run("insert failure reports progress", func(t *testing.T) {
		repo := &seedRepo{failAfter: 3}
		n, err := seedBooks(ctx, repo, "/default.png")
		require.Error(t, err)
		assert.Equal(t, 3, n)
		assert.Contains(t, err.Error(), `"Book 4"`)
	})
}
