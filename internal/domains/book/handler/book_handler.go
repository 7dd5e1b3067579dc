package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/auth"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

// Handler - HTTP Handler cho book (JSON API + form routes)
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ========================================
// JSON API (/api/v1/books, cần api_key)
// ========================================

// ListBooks - GET /api/v1/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		writeJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook - GET /api/v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		writeJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook - POST /api/v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var in model.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request body"})
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), auth.FromContext(c.Request.Context()), in, nil)
	if err != nil {
		writeJSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.CreateBookResponse{ID: book.ID, CreatedAt: book.CreatedAt})
}

// UpdateBook - PUT /api/v1/books/:id (full update, giữ cover hiện tại)
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in model.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request body"})
		return
	}

	if _, err := h.service.UpdateBook(c.Request.Context(), auth.FromContext(c.Request.Context()), id, in, nil); err != nil {
		writeJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Book updated successfully"})
}

// DeleteBook - DELETE /api/v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), auth.FromContext(c.Request.Context()), id); err != nil {
		writeJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Book deleted successfully"})
}

// ExportBooks - GET /api/v1/books/export
func (h *Handler) ExportBooks(c *gin.Context) {
	f, err := h.service.ExportBooks(c.Request.Context())
	if err != nil {
		writeJSONError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="books.xlsx"`)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// ========================================
// FORM ROUTES (multipart, cần session)
// ========================================

// AddBook - POST /add_book
func (h *Handler) AddBook(c *gin.Context) {
	in, cover, ok := bindBookForm(c)
	if !ok {
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), auth.FromContext(c.Request.Context()), in, cover)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Book Added Successfully", model.BookFormResponse{
		Book: book,
		Slug: book.Slug(),
	})
}

// EditBook - POST /books/:slug/edit
func (h *Handler) EditBook(c *gin.Context) {
	id, err := utils.ParseSlugID(c.Param("slug"))
	if err != nil {
		response.FromError(c, model.ErrInvalidSlug)
		return
	}

	in, cover, ok := bindBookForm(c)
	if !ok {
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), auth.FromContext(c.Request.Context()), id, in, cover)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book Updated Successfully", model.BookFormResponse{
		Book: book,
		Slug: book.Slug(),
	})
}

// DownloadCover - GET /books/:slug/download
func (h *Handler) DownloadCover(c *gin.Context) {
	id, err := utils.ParseSlugID(c.Param("slug"))
	if err != nil {
		response.FromError(c, model.ErrInvalidSlug)
		return
	}

	path, err := h.service.DownloadCover(c.Request.Context(), auth.FromContext(c.Request.Context()), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Cover downloaded", model.DownloadResponse{Path: path})
}

// ========================================
// HELPERS
// ========================================

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid book id"})
		return 0, false
	}
	return id, true
}

// writeJSONError - body {error: ...} cho JSON API
func writeJSONError(c *gin.Context, err error) {
	status, _ := response.StatusFor(err)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		c.JSON(status, model.ErrorResponse{Error: "not found"})
	case errors.Is(err, apperror.ErrValidation):
		body := gin.H{"error": "validation failed"}
		if fields := response.ValidationFields(err); fields != nil {
			body["details"] = fields
		}
		c.JSON(status, body)
	default:
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, gin.H{"error": response.ClientMessage(err)})
	}
}

func bindBookForm(c *gin.Context) (model.BookInput, *model.CoverFile, bool) {
	var in model.BookInput
	if err := c.ShouldBind(&in); err != nil {
		response.BadRequest(c, "invalid form data")
		return in, nil, false
	}

	fh, err := c.FormFile("cover")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, nil, true
	}
	if err != nil {
		response.BadRequest(c, "invalid cover upload")
		return in, nil, false
	}
	return in, coverFromHeader(fh), true
}

func coverFromHeader(fh *multipart.FileHeader) *model.CoverFile {
	if fh == nil || fh.Filename == "" {
		return nil
	}
	return &model.CoverFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
