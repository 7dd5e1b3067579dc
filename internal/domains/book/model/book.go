package model

import (
	"time"

	"library-catalog/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Book represents a catalog record (bảng book)
type Book struct {
	ID              int64     `json:"id" db:"id"`
	CoverURL        string    `json:"cover_url" db:"cover_url"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	PublicationYear int       `json:"publication_year" db:"publication_year"`
	MainGenre       string    `json:"main_genre" db:"main_genre"`
	Description     string    `json:"description" db:"description"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Slug dùng cho form routes: <title>-<id>
func (b *Book) Slug() string {
	return utils.BookSlug(b.Title, b.ID)
}

// Fields trả về phần mutable của record
func (b *Book) Fields() BookFields {
	return BookFields{
		CoverURL:        b.CoverURL,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		MainGenre:       b.MainGenre,
		Description:     b.Description,
	}
}

// BookFields is the full set of mutable columns. Update overwrites all of them.
type BookFields struct {
	CoverURL        string
	Title           string
	Author          string
	PublicationYear int
	MainGenre       string
	Description     string
}

func (f BookFields) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error("title is required")),
		validation.Field(&f.Author, validation.Required.Error("author is required")),
		validation.Field(&f.PublicationYear,
			validation.Required.Error("publication year is required"),
			validation.Min(MinPublicationYear).Error("publication year must be positive"),
			validation.Max(MaxPublicationYear).Error("publication year is out of range"),
		),
		validation.Field(&f.MainGenre, validation.Required.Error("main genre is required")),
		validation.Field(&f.Description, validation.Required.Error("description is required")),
	)
}

const (
	MinPublicationYear = 1
	MaxPublicationYear = 9999
)
