package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/auth"

	"github.com/stretchr/testify/mock"
)

// ========================================
// REPOSITORY MOCK
// ========================================

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, fields model.BookFields) (*model.Book, error) {
	args := m.Called(ctx, fields)
	book, _ := args.Get(0).(*model.Book)
	return book, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	args := m.Called(ctx, id)
	book, _ := args.Get(0).(*model.Book)
	return book, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id int64, fields model.BookFields) (*model.Book, error) {
	args := m.Called(ctx, id, fields)
	book, _ := args.Get(0).(*model.Book)
	return book, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// ========================================
// COVER SERVICE MOCK
// ========================================

type mockCoverService struct {
	mock.Mock
}

func (m *mockCoverService) UploadCover(ctx context.Context, file *model.CoverFile) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *mockCoverService) ReplaceCover(ctx context.Context, oldURL string, file *model.CoverFile) (string, error) {
	args := m.Called(ctx, oldURL, file)
	return args.String(0), args.Error(1)
}

func (m *mockCoverService) ResolveDownloadTarget(ctx context.Context, caller *auth.Caller, coverURL string) (string, error) {
	args := m.Called(ctx, caller, coverURL)
	return args.String(0), args.Error(1)
}

func (m *mockCoverService) DiscardCover(ctx context.Context, coverURL string) error {
	return m.Called(ctx, coverURL).Error(0)
}

// ========================================
// OBJECT STORE MOCK
// ========================================

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Put(ctx context.Context, key, localPath, contentType string) error {
	return m.Called(ctx, key, localPath, contentType).Error(0)
}

func (m *mockStore) URL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockStore) Get(ctx context.Context, key, localPath string) error {
	return m.Called(ctx, key, localPath).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStore) KeyFromURL(rawURL string) (string, bool) {
	args := m.Called(rawURL)
	return args.String(0), args.Bool(1)
}

// ========================================
// IN-MEMORY OBJECT STORE
// ========================================

const memStoreBase = "http://store.test/covers-bucket/"

// memStore giữ blob trong map, mỗi lần Put sinh token mới
type memStore struct {
	blobs  map[string][]byte
	tokens map[string]string
	types  map[string]string
	seq    int
}

func newMemStore() *memStore {
	return &memStore{
		blobs:  make(map[string][]byte),
		tokens: make(map[string]string),
		types:  make(map[string]string),
	}
}

func (s *memStore) Put(_ context.Context, key, localPath, contentType string) error {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	s.seq++
	s.blobs[key] = data
	s.tokens[key] = fmt.Sprintf("tok-%d", s.seq)
	s.types[key] = contentType
	return nil
}

func (s *memStore) URL(_ context.Context, key string) (string, error) {
	token, ok := s.tokens[key]
	if !ok {
		return "", errors.New("no such key")
	}
	return memStoreBase + key + "?token=" + token, nil
}

func (s *memStore) Get(_ context.Context, key, localPath string) error {
	data, ok := s.blobs[key]
	if !ok {
		return errors.New("no such key")
	}
	return os.WriteFile(localPath, data, 0o644)
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.blobs, key)
	delete(s.tokens, key)
	delete(s.types, key)
	return nil
}

func (s *memStore) KeyFromURL(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, memStoreBase) {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	return strings.TrimPrefix(u.Path, "/covers-bucket/"), true
}

// ========================================
// HELPERS
// ========================================

func newCoverFile(name, content string) *model.CoverFile {
	return &model.CoverFile{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}
