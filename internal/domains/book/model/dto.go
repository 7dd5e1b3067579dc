package model

import (
	"io"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// INPUT
// ========================================

// BookInput là input đã bind từ JSON body hoặc multipart form.
// Được validate một lần tại handler trước khi tới service.
type BookInput struct {
	Title           string `json:"title" form:"title"`
	Author          string `json:"author" form:"author"`
	PublicationYear int    `json:"publication_year" form:"publication_year"`
	MainGenre       string `json:"main_genre" form:"main_genre"`
	Description     string `json:"description" form:"description"`
}

// Normalize trims whitespace on every text field.
func (in *BookInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.MainGenre = strings.TrimSpace(in.MainGenre)
	in.Description = strings.TrimSpace(in.Description)
}

func (in BookInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&in.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&in.PublicationYear,
			validation.Required.Error("publication year is required"),
			validation.Min(MinPublicationYear).Error("publication year must be positive"),
			validation.Max(MaxPublicationYear).Error("publication year is out of range"),
		),
		validation.Field(&in.MainGenre,
			validation.Required.Error("main genre is required"),
			validation.Length(1, 100),
		),
		validation.Field(&in.Description, validation.Required.Error("description is required")),
	)
}

// ToFields ghép input với cover URL đã resolve
func (in BookInput) ToFields(coverURL string) BookFields {
	return BookFields{
		CoverURL:        coverURL,
		Title:           in.Title,
		Author:          in.Author,
		PublicationYear: in.PublicationYear,
		MainGenre:       in.MainGenre,
		Description:     in.Description,
	}
}

// CoverFile là file cover upload kèm form. nil nghĩa là không có file.
type CoverFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// ========================================
// RESPONSES
// ========================================

type CreateBookResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// BookFormResponse là data trả về cho form routes
type BookFormResponse struct {
	Book *Book  `json:"book"`
	Slug string `json:"slug"`
}

type DownloadResponse struct {
	Path string `json:"path"`
}
