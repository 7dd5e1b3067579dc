package apikey

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog/log"
)

// Service - Access Metering
type Service interface {
	// Issue tạo key cho email, chỉ gọi một lần lúc đăng ký
	Issue(ctx context.Context, email string) (*ApiKey, error)

	// Authorize map key → caller và tăng counter đúng 1 lần.
	// Counter không atomic với request mà nó gate (best-effort).
	Authorize(ctx context.Context, key string) (*ApiKey, error)

	GetByEmail(ctx context.Context, email string) (*ApiKey, error)
}

type service struct {
	repo     Repository
	generate func() (string, error)
}

func NewService(repo Repository) Service {
	return &service{
		repo:     repo,
		generate: generateKey,
	}
}

func (s *service) Issue(ctx context.Context, email string) (*ApiKey, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return nil, ErrInvalidEmail
	}

	value, err := s.generate()
	if err != nil {
		return nil, fmt.Errorf("generate api key: %w", err)
	}

	key := &ApiKey{Email: email, Key: value}
	if err := s.repo.Create(ctx, key); err != nil {
		return nil, err
	}

	log.Info().Str("email", email).Msg("api key issued")
	return key, nil
}

func (s *service) Authorize(ctx context.Context, key string) (*ApiKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrAPIKeyMissing
	}
	return s.repo.IncrementUsage(ctx, key)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*ApiKey, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// generateKey: random 32-byte hex string (64 chars)
func generateKey() (string, error) {
	b := make([]byte, KeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
